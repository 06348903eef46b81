// Package debug gates diagnostic output on environment flags.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Sync    bool
	Render  bool
	Compile bool
	Svc     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Sync = boolEnv("TWINEDIT_DEBUG_SYNC")
	d.Render = boolEnv("TWINEDIT_DEBUG_RENDER")
	d.Compile = boolEnv("TWINEDIT_DEBUG_COMPILE")
	d.Svc = boolEnv("TWINEDIT_DEBUG_SVC")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Sync() bool {
	return d.Sync
}
func Render() bool {
	return d.Render
}
func Compile() bool {
	return d.Compile
}
func Svc() bool {
	return d.Svc
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
