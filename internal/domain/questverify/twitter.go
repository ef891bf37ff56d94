package questverify

import (
	"context"

	"github.com/mitchellh/mapstructure"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
)

type twitterVerifier struct {
	factory Factory

	Handle string `mapstructure:"twitterHandle"`
}

func newTwitterVerifier(factory Factory, proof map[string]any) (*twitterVerifier, error) {
	verifier := twitterVerifier{factory: factory}
	if err := mapstructure.Decode(proof, &verifier); err != nil {
		return nil, errorx.Unknown
	}

	if verifier.Handle == "" {
		return nil, errorx.New(errorx.BadRequest, "Twitter verification data missing")
	}

	return &verifier, nil
}

func (v *twitterVerifier) Verify(ctx context.Context, walletAddress string) error {
	target := xcontext.Configs(ctx).Quest.Twitter.TargetHandle
	following, err := v.factory.twitterEndpoint.CheckFollowing(ctx, v.Handle, target)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check the following of %s: %v", v.Handle, err)
		return errorx.New(errorx.Unavailable, "Verification failed")
	}

	if !following {
		return errorx.New(errorx.Unavailable, "Verification failed")
	}

	return nil
}
