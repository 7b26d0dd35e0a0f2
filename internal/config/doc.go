// Package config loads the optional HCL project file (conventionally
// tlbuild.hcl) that describes where a project's sources live, where
// artifacts go, and which files the scanner should consider.
package config
