package flagutil

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// IPv4Flag parses a string into a net.IP after asserting that it
// is an IPv4 address. This type implements the flag.Value interface.
type IPv4Flag struct {
	val net.IP
}

func (f *IPv4Flag) IP() net.IP {
	return f.val
}

func (f *IPv4Flag) Set(v string) error {
	ip := net.ParseIP(v)
	if ip == nil || ip.To4() == nil {
		return errors.New("not an IPv4 address")
	}
	f.val = ip
	return nil
}

func (f *IPv4Flag) String() string {
	return f.val.String()
}

var byteSizeSuffixes = map[string]int64{
	"":    1,
	"B":   1,
	"KIB": 1 << 10,
	"MIB": 1 << 20,
	"GIB": 1 << 30,
	"TIB": 1 << 40,
}

// ByteSizeFlag parses a string like "512", "64KiB", or "2GiB" into a byte
// count. This type implements the flag.Value interface.
type ByteSizeFlag struct {
	val int64
}

func (f *ByteSizeFlag) Bytes() int64 {
	return f.val
}

func (f *ByteSizeFlag) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("empty byte size")
	}
	i := 0
	for i < len(v) && (v[i] == '.' || (v[i] >= '0' && v[i] <= '9')) {
		i++
	}
	numPart, suffix := v[:i], strings.ToUpper(v[i:])
	mult, ok := byteSizeSuffixes[suffix]
	if !ok {
		return fmt.Errorf("unrecognized byte size suffix %q", v[i:])
	}
	n, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return fmt.Errorf("invalid byte size %q: %v", v, err)
	}
	if n < 0 {
		return fmt.Errorf("negative byte size %q", v)
	}
	f.val = int64(n * float64(mult))
	return nil
}

func (f *ByteSizeFlag) String() string {
	return strconv.FormatInt(f.val, 10)
}
