package main

import (
	"fmt"
	"strings"
)

type hexBytes []byte

func (v hexBytes) String() string {
	parts := make([]string, len(v))
	for i, b := range v {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}
