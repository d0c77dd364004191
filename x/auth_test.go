package x

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
)

func TestChainAuth(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	wallet := weavetest.NewCondition()

	sigs := &weavetest.CtxAuth{Key: "sigs"}
	exec := &weavetest.CtxAuth{Key: "exec"}

	cases := map[string]struct {
		ctx      quorum.Context
		auth     Authenticator
		wantMain quorum.Condition
		wantAll  []quorum.Condition
		missing  quorum.Condition
	}{
		"nothing authorized": {
			ctx:     context.Background(),
			auth:    ChainAuth(sigs, exec),
			missing: alice,
		},
		"signatures only": {
			ctx:      sigs.SetConditions(context.Background(), alice, bob),
			auth:     ChainAuth(sigs, exec),
			wantMain: alice,
			wantAll:  []quorum.Condition{alice, bob},
			missing:  wallet,
		},
		"executing wallet comes after signatures": {
			ctx:      exec.SetConditions(sigs.SetConditions(context.Background(), bob), wallet),
			auth:     ChainAuth(sigs, exec),
			wantMain: bob,
			wantAll:  []quorum.Condition{bob, wallet},
			missing:  alice,
		},
		"duplicates are reported once": {
			ctx:      exec.SetConditions(sigs.SetConditions(context.Background(), alice), alice, wallet),
			auth:     ChainAuth(sigs, exec),
			wantMain: alice,
			wantAll:  []quorum.Condition{alice, wallet},
			missing:  bob,
		},
		"authenticator not chained is ignored": {
			ctx:     exec.SetConditions(context.Background(), wallet),
			auth:    ChainAuth(sigs),
			missing: wallet,
		},
		"static signer": {
			ctx:      context.Background(),
			auth:     ChainAuth(&weavetest.Auth{Signer: bob}, sigs),
			wantMain: bob,
			wantAll:  []quorum.Condition{bob},
			missing:  alice,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantMain, MainSigner(tc.ctx, tc.auth))
			assert.Equal(t, tc.wantAll, tc.auth.GetConditions(tc.ctx))
			for _, c := range tc.wantAll {
				if !tc.auth.HasAddress(tc.ctx, c.Address()) {
					t.Fatalf("address of %s not authorized", c)
				}
			}
			if tc.auth.HasAddress(tc.ctx, tc.missing.Address()) {
				t.Fatalf("address of %s must not be authorized", tc.missing)
			}
		})
	}
}
