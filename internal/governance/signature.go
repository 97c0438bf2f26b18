package governance

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const votePrimaryType = "Vote"

var voteTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	votePrimaryType: {
		{Name: "proposalId", Type: "uint256"},
		{Name: "support", Type: "uint8"},
	},
}

// Domain separates signatures of one engine instance from any other scheme or
// deployment.
type Domain struct {
	Name              string
	ChainID           *big.Int
	VerifyingContract common.Address
}

// VoteMessage is the signed ballot payload.
type VoteMessage struct {
	ProposalID common.Hash
	Support    Support
}

// Verifier checks EIP-712 signed ballots. It holds no mutable state.
type Verifier struct {
	domain apitypes.TypedDataDomain
}

func NewVerifier(domain Domain) *Verifier {
	var chainID *big.Int
	if domain.ChainID != nil {
		chainID = new(big.Int).Set(domain.ChainID)
	}
	return &Verifier{
		domain: apitypes.TypedDataDomain{
			Name:              domain.Name,
			ChainId:           (*math.HexOrDecimal256)(chainID),
			VerifyingContract: domain.VerifyingContract.Hex(),
		},
	}
}

// Digest returns the EIP-712 hash a voter signs for msg.
func (v *Verifier) Digest(msg VoteMessage) (common.Hash, error) {
	typedData := apitypes.TypedData{
		Types:       voteTypes,
		PrimaryType: votePrimaryType,
		Domain:      v.domain,
		Message: apitypes.TypedDataMessage{
			"proposalId": msg.ProposalID.Big(),
			"support":    big.NewInt(int64(msg.Support)),
		},
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash typed data: %w", err)
	}
	return common.BytesToHash(hash), nil
}

// RecoverSigner returns the account that produced signature over msg. The
// signature is the 65 byte [R || S || V] form, V being 0/1 or 27/28.
func (v *Verifier) RecoverSigner(msg VoteMessage, signature []byte) (common.Address, error) {
	if len(signature) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: length %d", ErrMalformedSignature, len(signature))
	}

	sig := common.CopyBytes(signature)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(sig[crypto.RecoveryIDOffset], r, s, true) {
		return common.Address{}, fmt.Errorf("%w: invalid r, s or v", ErrMalformedSignature)
	}

	digest, err := v.Digest(msg)
	if err != nil {
		return common.Address{}, err
	}

	publicKey, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	return crypto.PubkeyToAddress(*publicKey), nil
}

// VerifyVote reports whether signature was produced by claimedVoter over
// exactly (id, support). A signature from anyone else, or over other data, is
// not an error; only a signature that cannot be decoded is.
func (v *Verifier) VerifyVote(signature []byte, claimedVoter common.Address, id common.Hash, support Support) (bool, error) {
	signer, err := v.RecoverSigner(VoteMessage{ProposalID: id, Support: support}, signature)
	if err != nil {
		return false, err
	}
	return signer == claimedVoter, nil
}

// SignVote signs (id, support) with key in the wallet format (V is 27 or 28).
func (v *Verifier) SignVote(key *ecdsa.PrivateKey, id common.Hash, support Support) ([]byte, error) {
	digest, err := v.Digest(VoteMessage{ProposalID: id, Support: support})
	if err != nil {
		return nil, err
	}

	signature, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign vote: %w", err)
	}
	signature[crypto.RecoveryIDOffset] += 27
	return signature, nil
}
