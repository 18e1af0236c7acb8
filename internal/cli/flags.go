package cli

// Flags holds all command-line flag values.
type Flags struct {
	CfgFile   string
	Service   string
	From      string
	Into      string
	AutoSwap  bool
	HTML      bool
	BatchFile string
	LogLevel  string
	LogFile   string
}

// NewFlags creates a new Flags instance with default values.
func NewFlags() *Flags {
	return &Flags{
		LogLevel: "info",
	}
}
