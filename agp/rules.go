// Copyright ©2020 the RagTag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package agp

// The controlled vocabularies of the AGP v2.1 specification. They are kept
// as data so the validator has no token knowledge of its own.

// ComponentTypes is the set of valid component type codes. Types "N" and
// "U" describe gaps; all others describe sequence components.
var ComponentTypes = map[string]bool{
	"A": true,
	"D": true,
	"F": true,
	"G": true,
	"O": true,
	"P": true,
	"W": true,
	"N": true,
	"U": true,
}

// Orientations maps valid orientation tokens to their values.
var Orientations = map[string]Orientation{
	"+":  Plus,
	"-":  Minus,
	"?":  Unknown,
	"0":  None,
	"na": NotApplicable,
}

// GapTypes is the set of valid gap type values.
var GapTypes = map[string]bool{
	"scaffold":        true,
	"contig":          true,
	"centromere":      true,
	"short_arm":       true,
	"heterochromatin": true,
	"telomere":        true,
	"repeat":          true,
	"contamination":   true,
}

// LinkageTypes is the set of valid linkage values.
var LinkageTypes = map[string]bool{
	"yes": true,
	"no":  true,
}

// EvidenceTypes is the set of valid linkage evidence tokens.
var EvidenceTypes = map[string]bool{
	"na":                 true,
	"paired-ends":        true,
	"align_genus":        true,
	"align_xgenus":       true,
	"align_trnscpt":      true,
	"within_clone":       true,
	"clone_contig":       true,
	"map":                true,
	"pcr":                true,
	"proximity_ligation": true,
	"strobe":             true,
	"unspecified":        true,
}

// uGapLength is the fixed length required of gaps with component type "U".
const uGapLength = 100
