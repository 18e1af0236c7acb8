// Package service defines the contract every online dictionary backend
// fulfils and the registry the rest of the engine resolves backends
// through. It also carries the shared language catalog plumbing, the
// lookup task lifecycle and the obfuscated credential store.
package service
