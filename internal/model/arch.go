package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownArch is returned for a model architecture outside the supported set.
var ErrUnknownArch = errors.New("unknown model architecture")

// Arch identifies the CNN architecture the classifier should use.
type Arch string

// Supported architectures.
const (
	ArchResNet  Arch = "resnet"
	ArchAlexNet Arch = "alexnet"
	ArchVGG     Arch = "vgg"
)

// Archs lists every supported architecture.
func Archs() []Arch {
	return []Arch{ArchResNet, ArchAlexNet, ArchVGG}
}

// ParseArch normalizes s and validates it against the supported set.
func ParseArch(s string) (Arch, error) {
	a := Arch(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ArchResNet, ArchAlexNet, ArchVGG:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q (use resnet, alexnet or vgg)", ErrUnknownArch, s)
}

// String returns the architecture name.
func (a Arch) String() string {
	return string(a)
}
