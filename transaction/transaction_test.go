// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umi-top/umi-core-go/address"
	"github.com/umi-top/umi-core-go/errkind"
	"github.com/umi-top/umi-core-go/key"
)

func zeroSeedKey(t *testing.T) key.SecretKey {
	t.Helper()
	sk, err := key.SecretKeyFromSeed(make([]byte, 32))
	require.NoError(t, err)
	return sk
}

func TestFromBytesRejectsWrongLength(t *testing.T) {
	_, err := FromBytes(make([]byte, 149))
	require.Error(t, err)
}

func TestEmptyBufferHashVector(t *testing.T) {
	tx, err := FromBytes(make([]byte, Length))
	require.NoError(t, err)

	h := tx.Hash()
	require.Equal(t, "1d83518b897b14e2943990eff655838246cc0207a7c95a5f3dfccc2e395f8bbf", hex(h[:]))
}

func TestSignAndVerifyBasicTransaction(t *testing.T) {
	sk := zeroSeedKey(t)
	sender := address.FromSecretKey(sk)

	var recipientKey key.PublicKey
	recipientKey[0] = 1
	recipient := address.FromPublicKey(recipientKey)

	tx := New()
	require.NoError(t, tx.SetVersion(Basic))
	require.NoError(t, tx.SetSender(sender))
	require.NoError(t, tx.SetRecipient(recipient))
	require.NoError(t, tx.SetValue(42))
	require.NoError(t, tx.SetNonce(1))

	_, err := tx.Sign(sk)
	require.NoError(t, err)

	ok, err := tx.Verify()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyFailsOnTamperedValue(t *testing.T) {
	sk := zeroSeedKey(t)
	sender := address.FromSecretKey(sk)

	var recipientKey key.PublicKey
	recipientKey[0] = 9
	recipient := address.FromPublicKey(recipientKey)

	tx := New()
	require.NoError(t, tx.SetVersion(Basic))
	require.NoError(t, tx.SetSender(sender))
	require.NoError(t, tx.SetRecipient(recipient))
	require.NoError(t, tx.SetValue(100))
	require.NoError(t, tx.SetNonce(1))
	_, err := tx.Sign(sk)
	require.NoError(t, err)

	raw := tx.Bytes()
	raw[offValue+7] ^= 0xff
	tampered, err := FromBytes(raw)
	require.NoError(t, err)

	ok, err := tampered.Verify()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyErrorsWhenSignatureNotSet(t *testing.T) {
	sk := zeroSeedKey(t)
	sender := address.FromSecretKey(sk)

	tx := New()
	require.NoError(t, tx.SetVersion(Basic))
	require.NoError(t, tx.SetSender(sender))

	_, err := tx.Verify()
	require.Error(t, err)
	require.True(t, errkind.Is(err, errkind.FieldNotSet))
}

func TestVersionIsImmutable(t *testing.T) {
	tx := New()
	require.NoError(t, tx.SetVersion(Basic))
	require.Error(t, tx.SetVersion(Basic))
}

func TestBasicTransactionRejectsSelfSend(t *testing.T) {
	sk := zeroSeedKey(t)
	sender := address.FromSecretKey(sk)

	tx := New()
	require.NoError(t, tx.SetVersion(Basic))
	require.NoError(t, tx.SetSender(sender))
	err := tx.SetRecipient(sender)
	require.Error(t, err)
}

func TestBasicTransactionRejectsGenesisSender(t *testing.T) {
	genesisSender, err := address.FromBytes(make([]byte, address.Length))
	require.NoError(t, err)

	tx := New()
	require.NoError(t, tx.SetVersion(Basic))
	err = tx.SetSender(genesisSender)
	require.Error(t, err)
}

func TestGenesisTransactionRequiresGenesisSenderAndUmiRecipient(t *testing.T) {
	genesisSender, err := address.FromBytes(make([]byte, address.Length))
	require.NoError(t, err)

	var recipientKey key.PublicKey
	umiRecipient := address.FromPublicKey(recipientKey)

	tx := New()
	require.NoError(t, tx.SetVersion(Genesis))
	require.NoError(t, tx.SetSender(genesisSender))
	require.NoError(t, tx.SetRecipient(umiRecipient))

	// A Umi-namespace sender must be rejected for a Genesis transaction.
	tx2 := New()
	require.NoError(t, tx2.SetVersion(Genesis))
	require.Error(t, tx2.SetSender(umiRecipient))
}

func TestCreateStructureRequiresUmiSenderAndRejectsReservedPrefixes(t *testing.T) {
	sk := zeroSeedKey(t)
	sender := address.FromSecretKey(sk)

	tx := New()
	require.NoError(t, tx.SetVersion(CreateStructure))
	require.NoError(t, tx.SetSender(sender))

	require.Error(t, tx.SetPrefix("umi"))
	require.Error(t, tx.SetPrefix("genesis"))
	require.NoError(t, tx.SetPrefix("com"))
	require.NoError(t, tx.SetProfitPercent(100))
	require.NoError(t, tx.SetFeePercent(0))
	require.NoError(t, tx.SetName("shop"))

	name, err := tx.Name()
	require.NoError(t, err)
	require.Equal(t, "shop", name)
}

func TestCreateStructureSenderMustBeUmi(t *testing.T) {
	genesisSender, err := address.FromBytes(make([]byte, address.Length))
	require.NoError(t, err)

	tx := New()
	require.NoError(t, tx.SetVersion(CreateStructure))
	err = tx.SetSender(genesisSender)
	require.Error(t, err)
}

func TestRecipientUnavailableForStructureVariants(t *testing.T) {
	sk := zeroSeedKey(t)
	sender := address.FromSecretKey(sk)

	tx := New()
	require.NoError(t, tx.SetVersion(UpdateStructure))
	require.NoError(t, tx.SetSender(sender))

	var a address.Address
	err := tx.SetRecipient(a)
	require.Error(t, err)
	require.True(t, errkind.Is(err, errkind.InvalidField))
}

func TestValueRangeEnforcedOnSet(t *testing.T) {
	tx := New()
	require.NoError(t, tx.SetVersion(Basic))
	require.Error(t, tx.SetValue(1<<53))
	require.NoError(t, tx.SetValue((1<<53)-1))
}

func TestNameRejectsOversizedEncoding(t *testing.T) {
	tx := New()
	require.NoError(t, tx.SetVersion(CreateStructure))

	long := make([]byte, 36)
	for i := range long {
		long[i] = 'a'
	}
	require.Error(t, tx.SetName(string(long)))
}

func TestValidateOnFromBytesSurfacesIllegalCombination(t *testing.T) {
	raw := make([]byte, Length)
	raw[0] = Basic
	// sender left as all-zero bytes: version Genesis(0), illegal for Basic sender.
	tx, err := FromBytes(raw)
	require.NoError(t, err)

	err = tx.Validate()
	require.Error(t, err)
}

func TestValidateRejectsBasicSelfSendBuiltFromBytes(t *testing.T) {
	var pk key.PublicKey
	pk[0] = 7
	self := address.FromPublicKey(pk)

	raw := make([]byte, Length)
	raw[0] = Basic
	copy(raw[offSender:offSender+addrLen], self.Bytes())
	copy(raw[offRecip:offRecip+addrLen], self.Bytes())

	tx, err := FromBytes(raw)
	require.NoError(t, err)

	err = tx.Validate()
	require.Error(t, err)

	_, err = tx.Recipient()
	require.Error(t, err)
}

func TestValidateRejectsReservedStructurePrefixBuiltFromBytes(t *testing.T) {
	sk := zeroSeedKey(t)
	sender := address.FromSecretKey(sk)

	raw := make([]byte, Length)
	raw[0] = CreateStructure
	copy(raw[offSender:offSender+addrLen], sender.Bytes())
	raw[offPrefix] = umiPrefixHigh
	raw[offPrefix+1] = umiPrefixLow
	raw[offProfit] = byte(minProfitPercent >> 8)
	raw[offProfit+1] = byte(minProfitPercent)

	tx, err := FromBytes(raw)
	require.NoError(t, err)

	err = tx.Validate()
	require.Error(t, err)

	_, err = tx.Prefix()
	require.Error(t, err)
	require.True(t, errkind.Is(err, errkind.InvalidPrefix))
}

const hexDigits = "0123456789abcdef"

func hex(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0xf]
	}
	return string(out)
}
