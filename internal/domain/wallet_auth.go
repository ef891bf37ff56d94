package domain

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/crypto"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
)

type WalletAuthDomain interface {
	Login(ctx context.Context, req *model.WalletLoginRequest) (*model.WalletLoginResponse, error)
	Verify(ctx context.Context, req *model.WalletVerifyRequest) (*model.WalletVerifyResponse, error)
	Me(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
}

type walletAuthDomain struct {
	participantRepo repository.ParticipantRepository
}

func NewWalletAuthDomain(participantRepo repository.ParticipantRepository) *walletAuthDomain {
	return &walletAuthDomain{participantRepo: participantRepo}
}

// Login issues a fresh nonce the wallet must sign. The nonce is kept in the
// session so Verify can check the signature against it.
func (d *walletAuthDomain) Login(
	ctx context.Context, req *model.WalletLoginRequest,
) (*model.WalletLoginResponse, error) {
	if req.Address == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields")
	}

	return &model.WalletLoginResponse{
		Address: strings.ToLower(req.Address),
		Nonce:   crypto.GenerateRandomAlphabet(32),
	}, nil
}

func (d *walletAuthDomain) Verify(
	ctx context.Context, req *model.WalletVerifyRequest,
) (*model.WalletVerifyResponse, error) {
	if req.WalletAddress == "" || req.OriginalMessage == "" || req.SignedMessage == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields")
	}

	nonce := d.consumeSessionNonce(ctx)
	if nonce == "" || !strings.Contains(req.OriginalMessage, nonce) {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid nonce")
	}

	hash := accounts.TextHash([]byte(req.OriginalMessage))
	signature, err := decodeSignature(req.SignedMessage)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode signature: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid signature")
	}

	recovered, err := ethcrypto.SigToPub(hash, signature)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot recover signature to address: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid signature")
	}

	walletAddress := strings.ToLower(req.WalletAddress)
	recoveredAddr := ethcrypto.PubkeyToAddress(*recovered)
	if !bytes.Equal(recoveredAddr.Bytes(), common.HexToAddress(walletAddress).Bytes()) {
		return nil, errorx.New(errorx.Unauthenticated, "Mismatched address")
	}

	participant, err := d.participantRepo.Get(ctx, walletAddress)
	if err != nil {
		if !repository.IsNotFound(err) {
			xcontext.Logger(ctx).Errorf("Cannot get the participant: %v", err)
			return nil, errorx.Unknown
		}

		participant = &entity.Participant{WalletAddress: walletAddress}
		if err := d.participantRepo.Upsert(ctx, participant); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create the participant: %v", err)
			return nil, errorx.Unknown
		}
	}

	token, err := xcontext.TokenEngine(ctx).Generate(walletAddress, model.AccessToken{
		ID:            walletAddress,
		WalletAddress: walletAddress,
		Name:          participant.Name,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletVerifyResponse{
		Success:     true,
		Message:     "Wallet verified",
		AccessToken: token,
		User: model.User{
			WalletAddress: participant.WalletAddress,
			Name:          participant.Name,
			TotalPoints:   participant.Points,
		},
	}, nil
}

// Me returns the participant behind the access token of the request.
func (d *walletAuthDomain) Me(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	walletAddress := xcontext.RequestUserID(ctx)
	if walletAddress == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	participant, err := d.participantRepo.Get(ctx, walletAddress)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found the user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the participant: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{
		User: model.User{
			WalletAddress: participant.WalletAddress,
			Name:          participant.Name,
			TotalPoints:   participant.Points,
		},
	}, nil
}

// consumeSessionNonce pops the login nonce out of the session. A nonce is
// good for one verification attempt only.
func (d *walletAuthDomain) consumeSessionNonce(ctx context.Context) string {
	store := xcontext.SessionStore(ctx)
	r := xcontext.HTTPRequest(ctx)
	if store == nil || r == nil {
		return ""
	}

	session, err := store.Get(r, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get the session: %v", err)
		return ""
	}

	nonce, ok := session.Values["nonce"].(string)
	if !ok {
		return ""
	}

	delete(session.Values, "nonce")
	if w := xcontext.HTTPWriter(ctx); w != nil {
		if err := session.Save(r, w); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot save the session: %v", err)
		}
	}

	return nonce
}

func decodeSignature(hexSignature string) ([]byte, error) {
	signature, err := hexutil.Decode(hexSignature)
	if err != nil {
		return nil, err
	}

	if len(signature) != ethcrypto.SignatureLength {
		return nil, errors.New("invalid signature length")
	}

	if signature[ethcrypto.RecoveryIDOffset] == 27 || signature[ethcrypto.RecoveryIDOffset] == 28 {
		signature[ethcrypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1
	}

	return signature, nil
}
