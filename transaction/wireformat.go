// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

// This file documents the wire layout as a set of named, exported
// constants in the style of the teacher's wire.ProtocolVersion table:
// one named constant per field, each commented with the byte range it
// occupies and the versions it applies to. Unlike wire's table, which
// grows with each protocol revision, this layout is fixed by spec §3
// for all eight of this protocol's transaction versions.

const (
	// OffsetVersion is the 1-byte version tag, present in every
	// transaction version.
	OffsetVersion = offVersion

	// OffsetSender is the 34-byte sender address, present in every
	// transaction version.
	OffsetSender = offSender

	// OffsetRecipient is the 34-byte recipient address. Present in
	// every version except CreateStructure and UpdateStructure, which
	// overlay this range with OffsetPrefix, OffsetProfitPercent,
	// OffsetFeePercent, OffsetNameLength, and OffsetName instead.
	OffsetRecipient = offRecip

	// OffsetPrefix is the 2-byte structure namespace prefix (packed
	// version tag). Present only in CreateStructure and UpdateStructure.
	OffsetPrefix = offPrefix

	// OffsetProfitPercent is the 2-byte big-endian profit percentage.
	// Present only in CreateStructure and UpdateStructure.
	OffsetProfitPercent = offProfit

	// OffsetFeePercent is the 2-byte big-endian fee percentage. Present
	// only in CreateStructure and UpdateStructure.
	OffsetFeePercent = offFee

	// OffsetNameLength is the 1-byte structure name length. Present
	// only in CreateStructure and UpdateStructure.
	OffsetNameLength = offNameLen

	// OffsetName is the 35-byte zero-padded UTF-8 structure name.
	// Present only in CreateStructure and UpdateStructure.
	OffsetName = offName

	// OffsetValue is the 8-byte big-endian value. Present only in
	// Genesis and Basic.
	OffsetValue = offValue

	// OffsetNonce is the 8-byte big-endian nonce, present in every
	// transaction version.
	OffsetNonce = offNonce

	// OffsetSignature is the 64-byte Ed25519 signature, present in
	// every transaction version. Bytes [0, OffsetSignature) are the
	// signed message; byte 149, the last byte of the 150-byte buffer,
	// is unused and must be zero.
	OffsetSignature = offSig
)
