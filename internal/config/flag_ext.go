package config

import "strings"

// stringsFlag collects every occurrence of a repeatable option in order.
type stringsFlag struct {
	v []string
}

func (f *stringsFlag) String() string     { return strings.Join(f.v, ",") }
func (f *stringsFlag) Set(s string) error { f.v = append(f.v, s); return nil }

type strFlag struct {
	v   string
	set bool
}

func (f *strFlag) String() string     { return f.v }
func (f *strFlag) Set(s string) error { f.v, f.set = s, true; return nil }

type boolFlag struct {
	v bool
}

func (f *boolFlag) String() string { return "" }
func (f *boolFlag) Set(s string) error {
	f.v = s == "true"
	return nil
}
func (f *boolFlag) IsBoolFlag() bool { return true }
