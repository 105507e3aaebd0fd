package proofs

import (
	"errors"
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke

	operation string
	params    []any
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	t.operation = operation
	t.params = params
	return t.res, t.err
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{
		State: "HALT",
		Stack: items,
	}
}

func TestContractReader_Config(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.Config()
	require.Error(t, err)

	ti.err = nil
	ti.res = &result.Invoke{State: "FAULT", FaultException: "config not found"}
	_, err = r.Config()
	require.ErrorContains(t, err, "config not found")

	ti.res = halt(stackitem.Make(42))
	_, err = r.Config()
	require.Error(t, err)

	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.Make([]byte{1, 2, 3}),
		stackitem.Make("https://x/ipfs"),
	}))
	_, err = r.Config()
	require.ErrorContains(t, err, "field Owner")

	owner := util.Uint160{10, 20, 30}
	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(owner.BytesBE()),
		stackitem.Make("https://x/ipfs"),
	}))
	cfg, err := r.Config()
	require.NoError(t, err)
	require.Equal(t, "config", ti.operation)
	require.Equal(t, &ProofsConfiguration{Owner: owner, BaseIPFS: "https://x/ipfs"}, cfg)
}

func TestContractReader_Proof(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(1700000000),
		stackitem.Make("airi"),
	}))
	_, err := r.Proof("Qm123")
	require.ErrorContains(t, err, "wrong number of structure elements")

	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(1700000000),
		stackitem.Make([]byte{0xff, 0xfe}),
		stackitem.Make("https://x/ipfs/Qm123"),
	}))
	_, err = r.Proof("Qm123")
	require.ErrorContains(t, err, "field AIProvider")

	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(1700000000),
		stackitem.Make("airi"),
		stackitem.Make("https://x/ipfs/Qm123"),
	}))
	p, err := r.Proof("Qm123")
	require.NoError(t, err)
	require.Equal(t, "proof", ti.operation)
	require.Equal(t, []any{"Qm123"}, ti.params)
	require.Equal(t, big.NewInt(1700000000), p.CreatedTime)
	require.Equal(t, "airi", p.AIProvider)
	require.Equal(t, "https://x/ipfs/Qm123", p.ReportLink)
}

func TestContractReader_Version(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.res = halt(stackitem.Make(1000))
	v, err := r.Version()
	require.NoError(t, err)
	require.EqualValues(t, 1000, v.Int64())
}

func TestEventsFromApplicationLog(t *testing.T) {
	_, err := UpdateProofEventsFromApplicationLog(nil)
	require.Error(t, err)
	_, err = UpdateConfigEventsFromApplicationLog(nil)
	require.Error(t, err)

	owner := util.Uint160{5, 6, 7}
	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{
				{
					Name: "UpdateConfig",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(owner.BytesBE()),
						stackitem.Make("https://x/ipfs"),
					}),
				},
				{
					Name: "UpdateProof",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make("Qm123"),
						stackitem.Make("airi"),
						stackitem.Make("https://x/ipfs/Qm123"),
						stackitem.Make(1700000000),
					}),
				},
				{
					Name: "Transfer",
					Item: stackitem.NewArray(nil),
				},
			},
		}},
	}

	cfgEvents, err := UpdateConfigEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*UpdateConfigEvent{{Owner: owner, BaseIPFS: "https://x/ipfs"}}, cfgEvents)

	proofEvents, err := UpdateProofEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, proofEvents, 1)
	require.Equal(t, "Qm123", proofEvents[0].ReportHash)
	require.Equal(t, "airi", proofEvents[0].AIProvider)
	require.Equal(t, "https://x/ipfs/Qm123", proofEvents[0].ReportLink)
	require.EqualValues(t, 1700000000, proofEvents[0].CreatedTime.Int64())

	log.Executions[0].Events[1].Item = stackitem.NewArray([]stackitem.Item{stackitem.Make("Qm123")})
	_, err = UpdateProofEventsFromApplicationLog(log)
	require.Error(t, err)
}
