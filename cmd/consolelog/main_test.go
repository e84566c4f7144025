package main

import (
	"testing"
)

func TestVersionVariable(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}
