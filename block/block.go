// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package block holds the placeholder Block and BlockHeader types
// named by the public API surface in spec §6. Their layout is an open
// question (spec §9): "Block and BlockHeader exist as empty shapes.
// Their layout is not defined here and must be specified separately
// before implementation." This package is grounded on the teacher's
// minimal type-declaration style (blockchain/indexers/types.go) scaled
// down to an intentionally empty shape.
package block

// BlockHeader is an empty placeholder. No fields are defined until the
// block layout is specified.
type BlockHeader struct{}

// Block is an empty placeholder. No fields are defined until the
// block layout is specified.
type Block struct{}
