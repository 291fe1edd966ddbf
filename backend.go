// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import (
	"os"
	"strings"

	"github.com/klauspost/cpuid/v2"
)

// Backend selects the comparison path, the SHA-256 block provider and
// whether SHA-256 lanes run side by side. Backends differ in speed only,
// never in results.
//
// Every backend but Generic compresses through sha256-simd, which uses the
// SHA extensions when the CPU has them and crypto/sha256 otherwise.
type Backend uint8

const (
	// Generic is the portable reference: byte-wise comparison, crypto/sha256
	// and lanes advanced one after another.
	Generic Backend = iota
	// AVX2 uses word comparison and parallel lanes.
	AVX2
	// AVX512 uses word comparison and parallel lanes.
	AVX512
	// SHANI uses word comparison, parallel lanes and the x86 SHA extensions.
	SHANI
	// ARMSHA2 uses word comparison, parallel lanes and the ARMv8 SHA2 instructions.
	ARMSHA2
)

// BackendEnv names the environment variable overriding backend detection.
const BackendEnv = "WIDEHASH_BACKEND"

var (
	hasOverride   bool
	activeBackend = selectBackend(os.Getenv(BackendEnv))
)

func init() {
	useBackend(activeBackend)
}

func (b Backend) String() string {
	switch b {
	case Generic:
		return "generic"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	case SHANI:
		return "shani"
	case ARMSHA2:
		return "armsha2"
	default:
		return "unknown"
	}
}

// ParseBackend parses the output of Backend.String.
func ParseBackend(s string) (Backend, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "avx2":
		return AVX2, true
	case "avx512":
		return AVX512, true
	case "shani":
		return SHANI, true
	case "armsha2":
		return ARMSHA2, true
	default:
		return Generic, false
	}
}

// Available reports whether the running CPU supports the backend.
func (b Backend) Available() bool {
	switch b {
	case Generic:
		return true
	case AVX2:
		return cpuid.CPU.Supports(cpuid.AVX2)
	case AVX512:
		return cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ, cpuid.AVX512BW, cpuid.AVX512VL)
	case SHANI:
		return cpuid.CPU.Supports(cpuid.SHA, cpuid.SSSE3, cpuid.SSE4)
	case ARMSHA2:
		return cpuid.CPU.Supports(cpuid.SHA2)
	default:
		return false
	}
}

// Backends lists every known backend, best last.
func Backends() []Backend {
	return []Backend{Generic, ARMSHA2, AVX2, AVX512, SHANI}
}

// ActiveBackend returns the process wide backend picked at init.
func ActiveBackend() Backend { return activeBackend }

// IsOverridden reports whether BackendEnv selected the active backend.
func IsOverridden() bool { return hasOverride }

func selectBackend(override string) Backend {
	if override != "" {
		if b, ok := ParseBackend(override); ok && b.Available() {
			hasOverride = true
			return b
		}
		// unknown or unsupported override: fall through to detection
	}
	best := Generic
	for _, b := range Backends() {
		if b.Available() {
			best = b
		}
	}
	return best
}

func useBackend(b Backend) {
	if b == Generic {
		compareBytes = compareGeneric
	} else {
		compareBytes = compareWords
	}
}
