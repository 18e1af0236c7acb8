package service

import (
	"bytes"
	"compress/zlib"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"sort"
)

// Secret stores obfuscated credentials for one service. Obfuscation is
// zlib compression followed by hex encoding; it keeps tokens out of
// plain sight in the config store, nothing more.
type Secret struct {
	Service  string `json:"service"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
}

// Encode masks a credential for storage.
func Encode(cred string) string {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return ""
	}
	if _, err := w.Write([]byte(cred)); err != nil {
		return ""
	}
	if err := w.Close(); err != nil {
		return ""
	}
	return hex.EncodeToString(buf.Bytes())
}

// Decode restores a previously masked credential. Malformed input
// yields an empty string.
func Decode(masked string) string {
	raw, err := hex.DecodeString(masked)
	if err != nil {
		return ""
	}
	r, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	defer r.Close()
	cred, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return string(cred)
}

// DecodedPassword returns the usable password.
func (s Secret) DecodedPassword() string { return Decode(s.Password) }

// DecodedUsername returns the usable username.
func (s Secret) DecodedUsername() string { return Decode(s.Username) }

// Secrets manages credentials for all registered services, keyed by
// service name and persisted as a JSON file.
type Secrets struct {
	path    string
	secrets map[string]Secret
}

// NewSecrets loads the credential file at path. A missing or unreadable
// file yields an empty store.
func NewSecrets(path string) *Secrets {
	s := &Secrets{path: path, secrets: make(map[string]Secret)}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var data map[string]Secret
	if err := json.Unmarshal(raw, &data); err != nil {
		return s
	}
	for name, sec := range data {
		sec.Service = name
		s.secrets[name] = sec
	}
	return s
}

// Get returns the credentials for a service, or an empty Secret bound
// to that service name.
func (s *Secrets) Get(service string) Secret {
	if sec, ok := s.secrets[service]; ok {
		return sec
	}
	return Secret{Service: service}
}

// Set stores credentials for a service. Call Save to persist.
func (s *Secrets) Set(sec Secret) {
	s.secrets[sec.Service] = sec
}

// Services lists the service names with stored credentials, sorted.
func (s *Secrets) Services() []string {
	names := make([]string, 0, len(s.secrets))
	for name := range s.secrets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes the credential store back to its file.
func (s *Secrets) Save() error {
	data, err := json.MarshalIndent(s.secrets, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
