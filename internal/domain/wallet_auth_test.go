package domain

import (
	"context"
	"crypto/ecdsa"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/testutil"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

// sessionContext attaches a request carrying a session with the given nonce.
func sessionContext(t *testing.T, ctx context.Context, nonce string) context.Context {
	store := xcontext.SessionStore(ctx)
	name := xcontext.Configs(ctx).Session.Name

	seed := httptest.NewRequest("GET", "/api/wallet/login", nil)
	recorder := httptest.NewRecorder()
	session, err := store.Get(seed, name)
	require.NoError(t, err)

	session.Values["nonce"] = nonce
	require.NoError(t, session.Save(seed, recorder))

	r := httptest.NewRequest("POST", "/api/v1/auth/wallet", nil)
	r.Header.Set("Cookie", recorder.Header().Get("Set-Cookie"))

	ctx = xcontext.WithHTTPRequest(ctx, r)
	return xcontext.WithHTTPWriter(ctx, httptest.NewRecorder())
}

func signMessage(t *testing.T, key *ecdsa.PrivateKey, message string) string {
	signature, err := ethcrypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)

	// Wallets present V as 27/28.
	signature[ethcrypto.RecoveryIDOffset] += 27
	return hexutil.Encode(signature)
}

func Test_walletAuthDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewWalletAuthDomain(repository.NewParticipantRepository())

	resp, err := d.Login(ctx, &model.WalletLoginRequest{Address: "0xABC"})
	require.NoError(t, err)
	require.Equal(t, "0xabc", resp.Address)
	require.NotEmpty(t, resp.Nonce)

	resp2, err := d.Login(ctx, &model.WalletLoginRequest{Address: "0xABC"})
	require.NoError(t, err)
	require.NotEqual(t, resp.Nonce, resp2.Nonce)

	_, err = d.Login(ctx, &model.WalletLoginRequest{})
	require.Equal(t, errorx.New(errorx.BadRequest, "Missing required fields"), err)
}

func Test_walletAuthDomain_Verify(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewWalletAuthDomain(repository.NewParticipantRepository())

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := strings.ToLower(ethcrypto.PubkeyToAddress(key.PublicKey).Hex())

	nonce := "test-nonce"
	message := "Sign in\nNonce: " + nonce
	ctx = sessionContext(t, ctx, nonce)

	resp, err := d.Verify(ctx, &model.WalletVerifyRequest{
		WalletAddress:   address,
		OriginalMessage: message,
		SignedMessage:   signMessage(t, key, message),
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, address, resp.User.WalletAddress)

	// The issued token resolves back to the wallet.
	info, err := xcontext.TokenEngine(ctx).Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, address, info.WalletAddress)
}

func Test_walletAuthDomain_Me(t *testing.T) {
	ctx := testutil.MockContext()
	participantRepo := repository.NewParticipantRepository()
	d := NewWalletAuthDomain(participantRepo)

	require.NoError(t, participantRepo.Upsert(ctx, &entity.Participant{
		WalletAddress: "0xabc",
		Name:          "alice",
		Points:        250,
	}))

	resp, err := d.Me(xcontext.WithRequestUserID(ctx, "0xabc"), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, "0xabc", resp.User.WalletAddress)
	require.Equal(t, "alice", resp.User.Name)
	require.Equal(t, uint64(250), resp.User.TotalPoints)

	_, err = d.Me(ctx, &model.GetMeRequest{})
	require.Equal(t, errorx.New(errorx.Unauthenticated, "You need to authenticate before"), err)

	_, err = d.Me(xcontext.WithRequestUserID(ctx, "0xdef"), &model.GetMeRequest{})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found the user"), err)
}

func Test_walletAuthDomain_Verify_Failed(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewWalletAuthDomain(repository.NewParticipantRepository())

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := strings.ToLower(ethcrypto.PubkeyToAddress(key.PublicKey).Hex())

	otherKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	nonce := "test-nonce"
	message := "Sign in\nNonce: " + nonce

	t.Run("missing fields", func(t *testing.T) {
		_, err := d.Verify(ctx, &model.WalletVerifyRequest{WalletAddress: address})
		require.Equal(t, errorx.New(errorx.BadRequest, "Missing required fields"), err)
	})

	t.Run("message without session nonce", func(t *testing.T) {
		ctx := sessionContext(t, ctx, nonce)
		_, err := d.Verify(ctx, &model.WalletVerifyRequest{
			WalletAddress:   address,
			OriginalMessage: "Sign in without nonce",
			SignedMessage:   signMessage(t, key, "Sign in without nonce"),
		})
		require.Equal(t, errorx.New(errorx.Unauthenticated, "Invalid nonce"), err)
	})

	t.Run("signed by another key", func(t *testing.T) {
		ctx := sessionContext(t, ctx, nonce)
		_, err := d.Verify(ctx, &model.WalletVerifyRequest{
			WalletAddress:   address,
			OriginalMessage: message,
			SignedMessage:   signMessage(t, otherKey, message),
		})
		require.Equal(t, errorx.New(errorx.Unauthenticated, "Mismatched address"), err)
	})

	t.Run("garbage signature", func(t *testing.T) {
		ctx := sessionContext(t, ctx, nonce)
		_, err := d.Verify(ctx, &model.WalletVerifyRequest{
			WalletAddress:   address,
			OriginalMessage: message,
			SignedMessage:   "0x1234",
		})
		require.Equal(t, errorx.New(errorx.BadRequest, "Invalid signature"), err)
	})

	t.Run("no session at all", func(t *testing.T) {
		_, err := d.Verify(ctx, &model.WalletVerifyRequest{
			WalletAddress:   address,
			OriginalMessage: message,
			SignedMessage:   signMessage(t, key, message),
		})
		require.Equal(t, errorx.New(errorx.Unauthenticated, "Invalid nonce"), err)
	})
}
