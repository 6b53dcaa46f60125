// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction implements the 150-byte Transaction record: a
// single buffer with version-dependent field overlays, typed
// accessors that guard field availability against the current
// version, and Ed25519 signing/verification over its first 85 bytes
// (spec §3, §4.7). It is grounded on the teacher's
// privacy/confidential.ConfidentialTx (struct-over-bytes transaction
// record validated by a pipeline of small per-concern functions) and
// on batarov-libumi's Transaction (same field offsets and error
// taxonomy, for this exact protocol).
package transaction

import (
	"github.com/umi-top/umi-core-go/address"
	"github.com/umi-top/umi-core-go/ed25519"
	"github.com/umi-top/umi-core-go/errkind"
	"github.com/umi-top/umi-core-go/hash"
	"github.com/umi-top/umi-core-go/internal/bitset"
	"github.com/umi-top/umi-core-go/key"
	"github.com/umi-top/umi-core-go/prefix"
	"github.com/umi-top/umi-core-go/utf8codec"
)

const component = "transaction"

// Length is the size in bytes of an encoded transaction.
const Length = 150

// Transaction version tags, per spec §3.
const (
	Genesis = iota
	Basic
	CreateStructure
	UpdateStructure
	UpdateProfitAddress
	UpdateFeeAddress
	CreateTransitAddress
	DeleteTransitAddress
)

const (
	maxSafeInt       = (1 << 53) - 1
	maxNameLength    = 35
	minProfitPercent = 100
	maxProfitPercent = 500
	maxFeePercent    = 2000
	minValue         = 1
)

// Byte offsets into the backing buffer, per spec §3's layout table.
const (
	offVersion  = 0
	offSender   = 1
	offRecip    = 35 // recipient address, OR structure-prefix+percent+name overlay
	offPrefix   = 35
	offProfit   = 37
	offFee      = 39
	offNameLen  = 41
	offName     = 42
	offValue    = 69
	offNonce    = 77
	offSig      = 85
	nameSlotLen = 35
	addrLen     = 34
)

// SignedLength is the number of leading bytes the signature covers
// (spec §6: "The canonical message signed is bytes [0, 85)").
const SignedLength = 85

const (
	bitVersion = iota
	bitSender
	bitRecipient
	bitValue
	bitPrefix
	bitName
	bitProfitPercent
	bitFeePercent
	bitNonce
	bitSignature
)

// Transaction is a 150-byte value type over a fixed buffer plus a
// small "which fields have been written" bitmap used only to guard
// reads before they are legal (spec §3 "Lifecycle", §9 "Field-set
// bitmap").
type Transaction struct {
	buf [Length]byte
	set bitset.Set
}

// New allocates an empty transaction with no fields set.
func New() Transaction {
	return Transaction{}
}

// FromBytes copies a 150-byte buffer into a Transaction and marks
// every field as set regardless of version; an illegal field/version
// combination is only rejected the first time that field is accessed
// (spec §4.7).
func FromBytes(b []byte) (Transaction, error) {
	var t Transaction
	if len(b) != Length {
		return t, errkind.New(errkind.InvalidLength, component, "transaction must be exactly 150 bytes")
	}
	copy(t.buf[:], b)
	t.set = bitset.All(bitVersion, bitSender, bitRecipient, bitValue, bitPrefix,
		bitName, bitProfitPercent, bitFeePercent, bitNonce, bitSignature)
	return t, nil
}

func errNotSet(field string) error {
	return errkind.New(errkind.FieldNotSet, component, field+" has not been set")
}

func errInvalidField(field string) error {
	return errkind.New(errkind.InvalidField, component, field+" is not available for this transaction version")
}

func isStructureOverlay(v uint8) bool {
	return v == CreateStructure || v == UpdateStructure
}

func hasValueField(v uint8) bool {
	return v == Genesis || v == Basic
}

// requireVersion returns the transaction's version, or an error if it
// has not yet been set. Every accessor but SetVersion itself depends
// on this.
func (t Transaction) requireVersion() (uint8, error) {
	if !t.set.Has(bitVersion) {
		return 0, errNotSet("version")
	}
	return t.buf[offVersion], nil
}

// Version returns the transaction's version tag.
func (t Transaction) Version() (uint8, error) {
	return t.requireVersion()
}

// SetVersion writes the version tag. It may only be called once: spec
// §3 makes the version field immutable once set.
func (t *Transaction) SetVersion(v uint8) error {
	if t.set.Has(bitVersion) {
		return errkind.New(errkind.FieldAlreadySet, component, "version is immutable once set")
	}
	if v > DeleteTransitAddress {
		return errkind.New(errkind.InvalidRange, component, "version must be 0..7")
	}
	t.buf[offVersion] = v
	t.set = t.set.With(bitVersion)
	return nil
}

func validateSenderForVersion(v uint8, sv uint16) error {
	switch {
	case v == Genesis:
		if sv != address.Genesis {
			return errkind.New(errkind.InvalidType, component, "genesis transactions must be sent from the genesis namespace")
		}
	case v >= CreateStructure:
		if sv != address.Umi {
			return errkind.New(errkind.InvalidType, component, "structure transactions must be sent from the umi namespace")
		}
	default:
		if sv == address.Genesis {
			return errkind.New(errkind.InvalidType, component, "only genesis transactions may be sent from the genesis namespace")
		}
	}
	return nil
}

func validateRecipientForVersion(v uint8, rv uint16) error {
	if rv == address.Genesis {
		return errkind.New(errkind.InvalidType, component, "recipient must not use the genesis namespace")
	}
	switch v {
	case Genesis:
		if rv != address.Umi {
			return errkind.New(errkind.InvalidType, component, "genesis transactions must pay the umi namespace")
		}
	case UpdateProfitAddress, UpdateFeeAddress, CreateTransitAddress, DeleteTransitAddress:
		if rv == address.Umi {
			return errkind.New(errkind.InvalidType, component, "structure admin transactions must not target the umi namespace")
		}
	}
	return nil
}

// Sender returns the transaction's sender address.
func (t Transaction) Sender() (address.Address, error) {
	if _, err := t.requireVersion(); err != nil {
		return address.Address{}, err
	}
	if !t.set.Has(bitSender) {
		return address.Address{}, errNotSet("sender")
	}
	a, err := address.FromBytes(t.buf[offSender : offSender+addrLen])
	if err != nil {
		return address.Address{}, err
	}
	v, _ := t.requireVersion()
	if err := validateSenderForVersion(v, a.Version()); err != nil {
		return address.Address{}, err
	}
	if err := t.verifyTxBasicSenderAndRecipient(); err != nil {
		return address.Address{}, err
	}
	return a, nil
}

// SetSender writes the sender address, validating it against the
// per-version rules of spec §3 and, for Basic transactions, against
// an already-set recipient (sender must differ from recipient, per
// SPEC_FULL.md §B).
func (t *Transaction) SetSender(a address.Address) error {
	v, err := t.requireVersion()
	if err != nil {
		return err
	}
	if err := validateSenderForVersion(v, a.Version()); err != nil {
		return err
	}
	if v == Basic && t.set.Has(bitRecipient) && bytesEqual(t.buf[offRecip:offRecip+addrLen], a.Bytes()) {
		return errkind.New(errkind.InvalidType, component, "basic transactions must not send to themselves")
	}
	copy(t.buf[offSender:offSender+addrLen], a.Bytes())
	t.set = t.set.With(bitSender)
	return nil
}

// Recipient returns the transaction's recipient address. Available
// for every version except CreateStructure and UpdateStructure, which
// overlay this byte range with structure fields instead.
func (t Transaction) Recipient() (address.Address, error) {
	v, err := t.requireVersion()
	if err != nil {
		return address.Address{}, err
	}
	if isStructureOverlay(v) {
		return address.Address{}, errInvalidField("recipient")
	}
	if !t.set.Has(bitRecipient) {
		return address.Address{}, errNotSet("recipient")
	}
	a, err := address.FromBytes(t.buf[offRecip : offRecip+addrLen])
	if err != nil {
		return address.Address{}, err
	}
	if err := validateRecipientForVersion(v, a.Version()); err != nil {
		return address.Address{}, err
	}
	if err := t.verifyTxBasicSenderAndRecipient(); err != nil {
		return address.Address{}, err
	}
	return a, nil
}

// SetRecipient writes the recipient address, validating per §3 and,
// for Basic transactions, against an already-set sender.
func (t *Transaction) SetRecipient(a address.Address) error {
	v, err := t.requireVersion()
	if err != nil {
		return err
	}
	if isStructureOverlay(v) {
		return errInvalidField("recipient")
	}
	if err := validateRecipientForVersion(v, a.Version()); err != nil {
		return err
	}
	if v == Basic && t.set.Has(bitSender) && bytesEqual(t.buf[offSender:offSender+addrLen], a.Bytes()) {
		return errkind.New(errkind.InvalidType, component, "basic transactions must not send to themselves")
	}
	copy(t.buf[offRecip:offRecip+addrLen], a.Bytes())
	t.set = t.set.With(bitRecipient)
	return nil
}

// verifyTxBasicSenderAndRecipient rejects a Basic transaction whose
// sender and recipient are byte-identical. It is a no-op until both
// fields are set, so it is safe to call from either getter regardless
// of which field was written first; Validate also calls it directly
// so a Transaction built via FromBytes is checked the same way.
// Grounded on batarov-libumi's verifyTxBasicSenderAndRecipient.
func (t Transaction) verifyTxBasicSenderAndRecipient() error {
	v, err := t.requireVersion()
	if err != nil {
		return err
	}
	if v != Basic || !t.set.Has(bitSender) || !t.set.Has(bitRecipient) {
		return nil
	}
	if bytesEqual(t.buf[offSender:offSender+addrLen], t.buf[offRecip:offRecip+addrLen]) {
		return errkind.New(errkind.InvalidType, component, "basic transactions must not send to themselves")
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkSafeInt(v uint64) error {
	if v > maxSafeInt {
		return errkind.New(errkind.InvalidRange, component, "value exceeds 2^53-1")
	}
	return nil
}

func getU64(buf []byte) uint64 {
	return uint64(buf[0])<<56 | uint64(buf[1])<<48 | uint64(buf[2])<<40 | uint64(buf[3])<<32 |
		uint64(buf[4])<<24 | uint64(buf[5])<<16 | uint64(buf[6])<<8 | uint64(buf[7])
}

func putU64(buf []byte, v uint64) {
	buf[0] = byte(v >> 56)
	buf[1] = byte(v >> 48)
	buf[2] = byte(v >> 40)
	buf[3] = byte(v >> 32)
	buf[4] = byte(v >> 24)
	buf[5] = byte(v >> 16)
	buf[6] = byte(v >> 8)
	buf[7] = byte(v)
}

// Value returns the transaction's value field, available only for
// Genesis and Basic transactions. The setter enforces [1, 2^53-1];
// the getter rejects a stored value above 2^53-1 (spec §3, §8, and the
// Open Question resolution in DESIGN.md).
func (t Transaction) Value() (uint64, error) {
	v, err := t.requireVersion()
	if err != nil {
		return 0, err
	}
	if !hasValueField(v) {
		return 0, errInvalidField("value")
	}
	if !t.set.Has(bitValue) {
		return 0, errNotSet("value")
	}
	n := getU64(t.buf[offValue : offValue+8])
	if err := checkSafeInt(n); err != nil {
		return 0, err
	}
	return n, nil
}

// SetValue writes the value field.
func (t *Transaction) SetValue(n uint64) error {
	v, err := t.requireVersion()
	if err != nil {
		return err
	}
	if !hasValueField(v) {
		return errInvalidField("value")
	}
	if n < minValue {
		return errkind.New(errkind.InvalidRange, component, "value must be at least 1")
	}
	if err := checkSafeInt(n); err != nil {
		return err
	}
	putU64(t.buf[offValue:offValue+8], n)
	t.set = t.set.With(bitValue)
	return nil
}

// Nonce returns the transaction's nonce, present in every version.
func (t Transaction) Nonce() (uint64, error) {
	if _, err := t.requireVersion(); err != nil {
		return 0, err
	}
	if !t.set.Has(bitNonce) {
		return 0, errNotSet("nonce")
	}
	n := getU64(t.buf[offNonce : offNonce+8])
	if err := checkSafeInt(n); err != nil {
		return 0, err
	}
	return n, nil
}

// SetNonce writes the transaction's nonce.
func (t *Transaction) SetNonce(n uint64) error {
	if _, err := t.requireVersion(); err != nil {
		return err
	}
	if err := checkSafeInt(n); err != nil {
		return err
	}
	putU64(t.buf[offNonce:offNonce+8], n)
	t.set = t.set.With(bitNonce)
	return nil
}

const (
	umiPrefixHigh     = 0x55
	umiPrefixLow      = 0xa9
	genesisPrefixHigh = 0x00
	genesisPrefixLow  = 0x00
)

// verifyReservedPrefixBytes rejects the reserved "umi" and "genesis"
// structure-prefix byte pairs per SPEC_FULL.md §B, ported from
// batarov-libumi's verifyTxStructurePrefix.
func verifyReservedPrefixBytes(hi, lo byte) error {
	if hi == umiPrefixHigh && lo == umiPrefixLow {
		return errkind.New(errkind.InvalidPrefix, component, "the umi namespace prefix is reserved")
	}
	if hi == genesisPrefixHigh && lo == genesisPrefixLow {
		return errkind.New(errkind.InvalidPrefix, component, "the genesis namespace prefix is reserved")
	}
	return nil
}

// verifyTxStructurePrefix re-checks a stored structure prefix against
// the reserved namespaces. It is a no-op for non-structure versions or
// before the prefix is set, so Validate can call it unconditionally on
// a Transaction built via FromBytes.
func (t Transaction) verifyTxStructurePrefix() error {
	v, err := t.requireVersion()
	if err != nil {
		return err
	}
	if !isStructureOverlay(v) || !t.set.Has(bitPrefix) {
		return nil
	}
	return verifyReservedPrefixBytes(t.buf[offPrefix], t.buf[offPrefix+1])
}

// Prefix returns the structure-namespace prefix string, available
// only for CreateStructure and UpdateStructure.
func (t Transaction) Prefix() (string, error) {
	v, err := t.requireVersion()
	if err != nil {
		return "", err
	}
	if !isStructureOverlay(v) {
		return "", errInvalidField("prefix")
	}
	if !t.set.Has(bitPrefix) {
		return "", errNotSet("prefix")
	}
	if err := verifyReservedPrefixBytes(t.buf[offPrefix], t.buf[offPrefix+1]); err != nil {
		return "", err
	}
	version := uint16(t.buf[offPrefix])<<8 | uint16(t.buf[offPrefix+1])
	return prefix.ToPrefix(version)
}

// SetPrefix writes the structure-namespace prefix, rejecting the
// reserved "umi" and "genesis" namespaces per SPEC_FULL.md §B (ported
// from batarov-libumi's verifyTxStructurePrefix).
func (t *Transaction) SetPrefix(s string) error {
	v, err := t.requireVersion()
	if err != nil {
		return err
	}
	if !isStructureOverlay(v) {
		return errInvalidField("prefix")
	}
	version, err := prefix.ToVersion(s)
	if err != nil {
		return err
	}
	hi, lo := byte(version>>8), byte(version)
	if err := verifyReservedPrefixBytes(hi, lo); err != nil {
		return err
	}
	t.buf[offPrefix] = hi
	t.buf[offPrefix+1] = lo
	t.set = t.set.With(bitPrefix)
	return nil
}

// Name returns the structure's display name, available only for
// CreateStructure and UpdateStructure.
func (t Transaction) Name() (string, error) {
	v, err := t.requireVersion()
	if err != nil {
		return "", err
	}
	if !isStructureOverlay(v) {
		return "", errInvalidField("name")
	}
	if !t.set.Has(bitName) {
		return "", errNotSet("name")
	}
	n := int(t.buf[offNameLen])
	if n > maxNameLength {
		return "", errkind.New(errkind.InvalidLength, component, "stored name length exceeds 35 bytes")
	}
	runes, err := utf8codec.Decode(t.buf[offName : offName+n])
	if err != nil {
		return "", err
	}
	return string(runes), nil
}

// SetName UTF-8-encodes s, rejects encodings of 36 bytes or more,
// and writes the length byte plus zero-padded payload.
func (t *Transaction) SetName(s string) error {
	v, err := t.requireVersion()
	if err != nil {
		return err
	}
	if !isStructureOverlay(v) {
		return errInvalidField("name")
	}
	encoded := utf8codec.EncodeString(s)
	if len(encoded) > maxNameLength {
		return errkind.New(errkind.InvalidLength, component, "name must encode to at most 35 UTF-8 bytes")
	}
	var slot [nameSlotLen]byte
	copy(slot[:], encoded)
	t.buf[offNameLen] = byte(len(encoded))
	copy(t.buf[offName:offName+nameSlotLen], slot[:])
	t.set = t.set.With(bitName)
	return nil
}

// ProfitPercent returns the structure's profit percentage, available
// only for CreateStructure and UpdateStructure.
func (t Transaction) ProfitPercent() (uint16, error) {
	v, err := t.requireVersion()
	if err != nil {
		return 0, err
	}
	if !isStructureOverlay(v) {
		return 0, errInvalidField("profit_percent")
	}
	if !t.set.Has(bitProfitPercent) {
		return 0, errNotSet("profit_percent")
	}
	p := uint16(t.buf[offProfit])<<8 | uint16(t.buf[offProfit+1])
	if p < minProfitPercent || p > maxProfitPercent {
		return 0, errkind.New(errkind.InvalidRange, component, "profit percent must be 100..500")
	}
	return p, nil
}

// SetProfitPercent writes the structure's profit percentage.
func (t *Transaction) SetProfitPercent(p uint16) error {
	v, err := t.requireVersion()
	if err != nil {
		return err
	}
	if !isStructureOverlay(v) {
		return errInvalidField("profit_percent")
	}
	if p < minProfitPercent || p > maxProfitPercent {
		return errkind.New(errkind.InvalidRange, component, "profit percent must be 100..500")
	}
	t.buf[offProfit] = byte(p >> 8)
	t.buf[offProfit+1] = byte(p)
	t.set = t.set.With(bitProfitPercent)
	return nil
}

// FeePercent returns the structure's fee percentage, available only
// for CreateStructure and UpdateStructure.
func (t Transaction) FeePercent() (uint16, error) {
	v, err := t.requireVersion()
	if err != nil {
		return 0, err
	}
	if !isStructureOverlay(v) {
		return 0, errInvalidField("fee_percent")
	}
	if !t.set.Has(bitFeePercent) {
		return 0, errNotSet("fee_percent")
	}
	p := uint16(t.buf[offFee])<<8 | uint16(t.buf[offFee+1])
	if p > maxFeePercent {
		return 0, errkind.New(errkind.InvalidRange, component, "fee percent must be 0..2000")
	}
	return p, nil
}

// SetFeePercent writes the structure's fee percentage.
func (t *Transaction) SetFeePercent(p uint16) error {
	v, err := t.requireVersion()
	if err != nil {
		return err
	}
	if !isStructureOverlay(v) {
		return errInvalidField("fee_percent")
	}
	if p > maxFeePercent {
		return errkind.New(errkind.InvalidRange, component, "fee percent must be 0..2000")
	}
	t.buf[offFee] = byte(p >> 8)
	t.buf[offFee+1] = byte(p)
	t.set = t.set.With(bitFeePercent)
	return nil
}

// Signature returns the transaction's 64-byte signature.
func (t Transaction) Signature() ([]byte, error) {
	if _, err := t.requireVersion(); err != nil {
		return nil, err
	}
	if !t.set.Has(bitSender) {
		return nil, errNotSet("sender")
	}
	if !t.set.Has(bitSignature) {
		return nil, errNotSet("signature")
	}
	out := make([]byte, ed25519.SignatureSize)
	copy(out, t.buf[offSig:offSig+ed25519.SignatureSize])
	return out, nil
}

// SetSignature writes a raw 64-byte signature directly.
func (t *Transaction) SetSignature(sig []byte) error {
	if _, err := t.requireVersion(); err != nil {
		return err
	}
	if !t.set.Has(bitSender) {
		return errNotSet("sender")
	}
	if len(sig) != ed25519.SignatureSize {
		return errkind.New(errkind.InvalidLength, component, "signature must be exactly 64 bytes")
	}
	copy(t.buf[offSig:offSig+ed25519.SignatureSize], sig)
	t.set = t.set.With(bitSignature)
	return nil
}

// Sign computes the Ed25519 signature over bytes [0, 85) with sk and
// writes it at offset 85, returning the transaction for chaining
// (spec §4.7). It requires version and sender to already be set.
func (t *Transaction) Sign(sk key.SecretKey) (*Transaction, error) {
	if _, err := t.requireVersion(); err != nil {
		return t, err
	}
	if !t.set.Has(bitSender) {
		return t, errNotSet("sender")
	}
	sig := sk.Sign(t.buf[:SignedLength])
	copy(t.buf[offSig:offSig+ed25519.SignatureSize], sig)
	t.set = t.set.With(bitSignature)
	return t, nil
}

// Verify checks the transaction's signature against its sender's
// public key. The bool result is the check outcome; the error reports
// that the check cannot run: a missing version, sender, or signature
// (FieldNotSet), or a stored sender whose namespace is not allowed for
// the transaction's version (InvalidType), per spec §7/§8.
func (t Transaction) Verify() (bool, error) {
	v, err := t.requireVersion()
	if err != nil {
		return false, err
	}
	if !t.set.Has(bitSender) {
		return false, errNotSet("sender")
	}
	if !t.set.Has(bitSignature) {
		return false, errNotSet("signature")
	}
	senderAddr, err := address.FromBytes(t.buf[offSender : offSender+addrLen])
	if err != nil {
		return false, err
	}
	if err := validateSenderForVersion(v, senderAddr.Version()); err != nil {
		return false, err
	}
	pk := senderAddr.PublicKey()
	sig := t.buf[offSig : offSig+ed25519.SignatureSize]
	return pk.VerifySignature(sig, t.buf[:SignedLength]), nil
}

// Hash returns the SHA-256 digest of the transaction's full 150-byte
// wire encoding.
func (t Transaction) Hash() [32]byte {
	return hash.Sum256(t.buf[:])
}

// Bytes returns a defensive copy of the transaction's 150-byte buffer.
func (t Transaction) Bytes() []byte {
	out := make([]byte, Length)
	copy(out, t.buf[:])
	return out
}

// Validate re-checks every field the transaction's version makes
// available, in the order spec §4.7 lists them, stopping at the first
// failure. It is a convenience for re-validating a transaction built
// via FromBytes without calling each typed accessor individually; the
// individual getters already perform most of these checks on access,
// but verifyTxBasicSenderAndRecipient and verifyTxStructurePrefix are
// additionally invoked here directly so the two SPEC_FULL.md §B rules
// they encode are always part of this pipeline regardless of getter
// call order.
func (t Transaction) Validate() error {
	if _, err := t.Version(); err != nil {
		return err
	}
	if _, err := t.Sender(); err != nil {
		return err
	}
	v, _ := t.Version()
	if isStructureOverlay(v) {
		if _, err := t.Prefix(); err != nil {
			return err
		}
		if _, err := t.Name(); err != nil {
			return err
		}
		if _, err := t.ProfitPercent(); err != nil {
			return err
		}
		if _, err := t.FeePercent(); err != nil {
			return err
		}
	} else {
		if _, err := t.Recipient(); err != nil {
			return err
		}
	}
	if hasValueField(v) {
		if _, err := t.Value(); err != nil {
			return err
		}
	}
	if _, err := t.Nonce(); err != nil {
		return err
	}
	if err := t.verifyTxBasicSenderAndRecipient(); err != nil {
		return err
	}
	if err := t.verifyTxStructurePrefix(); err != nil {
		return err
	}
	return nil
}
