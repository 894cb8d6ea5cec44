// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func setup(t *testing.T) *Ledger {
	store, err := storage.OpenMemory()
	require.NoError(t, err, "open storage")
	t.Cleanup(store.Close)

	l, err := Open(store, fixtures.Genesis(), Options{})
	require.NoError(t, err, "open ledger")
	return l
}

func idOf(l *Ledger, name string) protocol.ObjectId {
	var id protocol.ObjectId
	l.View(func(db *state.Database) {
		id = fixtures.Id(db, name)
	})
	return id
}

func balance(l *Ledger, name string, asset protocol.ObjectId) int64 {
	var n int64
	l.View(func(db *state.Database) {
		n = db.GetBalance(fixtures.Id(db, name), asset)
	})
	return n
}

// a transaction expiring a minute after the head block, signed by
// each named account
func signed(t *testing.T, l *Ledger, operations []transactionrecord.Operation, signers ...string) *transactionrecord.SignedTransaction {
	stx := &transactionrecord.SignedTransaction{
		Transaction: transactionrecord.Transaction{
			Expiration: l.db.HeadTime() + 60,
			Operations: operations,
		},
	}
	keys := make([]*account.PrivateKey, len(signers))
	for i, name := range signers {
		keys[i] = fixtures.Key(name)
	}
	require.NoError(t, stx.Sign(fixtures.Genesis().ChainId, keys...), "sign")
	return stx
}

func transferOp(l *Ledger, from string, to string, amount int64) *transactionrecord.Transfer {
	return &transactionrecord.Transfer{
		From:   idOf(l, from),
		To:     idOf(l, to),
		Amount: protocol.NewAmount(amount, protocol.CoreAsset),
	}
}

func TestPushTransaction(t *testing.T) {
	l := setup(t)

	stx := signed(t, l, []transactionrecord.Operation{transferOp(l, "alice", "bob", 100)}, "alice")
	processed, err := l.PushTransaction(stx)
	require.NoError(t, err, "push")

	txId, err := stx.Id()
	require.NoError(t, err, "id")
	assert.Equal(t, txId, processed.Id, "id")
	assert.Len(t, processed.Results, 1, "results")
	assert.Len(t, processed.Operations, 1, "operations")

	assert.Equal(t, fixtures.InitialCore-100, balance(l, "alice", protocol.CoreAsset), "alice")
	assert.Equal(t, fixtures.InitialCore+100, balance(l, "bob", protocol.CoreAsset), "bob")
	assert.Equal(t, 1, l.PendingCount(), "pending")
	assert.True(t, l.IsPending(txId), "pending id")
	assert.False(t, l.IsPending(merkle.NewDigest([]byte("other"))), "other id")

	_, err = l.PushTransaction(stx)
	assert.ErrorIs(t, err, fault.ErrDuplicateTransaction, "replay")
}

func TestTransactionIsAtomic(t *testing.T) {
	l := setup(t)

	stx := signed(t, l, []transactionrecord.Operation{
		transferOp(l, "alice", "bob", 100),
		transferOp(l, "alice", "bob", fixtures.InitialCore+1),
	}, "alice")
	_, err := l.PushTransaction(stx)
	require.Error(t, err, "second transfer overdraws")
	assert.True(t, fault.IsValidation(err), "validation error: %s", err)

	assert.Equal(t, fixtures.InitialCore, balance(l, "alice", protocol.CoreAsset), "alice unchanged")
	assert.Equal(t, fixtures.InitialCore, balance(l, "bob", protocol.CoreAsset), "bob unchanged")
	assert.Equal(t, 0, l.PendingCount(), "nothing pending")
	assert.Equal(t, 0, l.db.Transactions.Size(), "no transaction record")
}

// an operation is evaluated after the one before it was applied, so a
// second transfer that no longer fits is rejected like any other
func TestOperationsApplyInOrder(t *testing.T) {
	l := setup(t)

	half := fixtures.InitialCore/2 + 1
	stx := signed(t, l, []transactionrecord.Operation{
		transferOp(l, "alice", "bob", half),
		transferOp(l, "alice", "bob", half),
	}, "alice")
	_, err := l.PushTransaction(stx)
	assert.ErrorIs(t, err, fault.ErrInsufficientBalance, "second transfer")
	assert.False(t, fault.IsErrFatal(err), "not fatal")

	assert.Equal(t, fixtures.InitialCore, balance(l, "alice", protocol.CoreAsset), "alice unchanged")
	assert.Equal(t, fixtures.InitialCore, balance(l, "bob", protocol.CoreAsset), "bob unchanged")
	assert.Equal(t, 0, l.db.Transactions.Size(), "no transaction record")
}

func TestApplyFailureIsFatal(t *testing.T) {
	l := setup(t)

	l.registry = evaluator.NewRegistry()
	l.registry.Register(transactionrecord.TransferTag, evaluator.New(
		func(db state.Reader, op *transactionrecord.Transfer) (struct{}, error) {
			return struct{}{}, nil
		},
		func(db *state.Database, op *transactionrecord.Transfer, _ struct{}) (evaluator.Result, error) {
			if err := db.AdjustBalance(op.From, protocol.NewAmount(-op.Amount.Amount, op.Amount.AssetId)); nil != err {
				return evaluator.VoidResult(), err
			}
			return evaluator.VoidResult(), errors.New("index corrupted")
		},
	))

	stx := signed(t, l, []transactionrecord.Operation{transferOp(l, "alice", "bob", 100)}, "alice")
	_, err := l.PushTransaction(stx)
	assert.ErrorIs(t, err, fault.ErrApplyFailed, "apply failed")
	assert.True(t, fault.IsErrFatal(err), "fatal")

	assert.Equal(t, fixtures.InitialCore, balance(l, "alice", protocol.CoreAsset), "alice unchanged")
	assert.Equal(t, 0, l.db.Transactions.Size(), "no transaction record")
	assert.Equal(t, 0, l.PendingCount(), "nothing pending")
}

func TestStructuralChecks(t *testing.T) {
	l := setup(t)

	_, err := l.PushTransaction(signed(t, l, nil, "alice"))
	assert.ErrorIs(t, err, fault.ErrEmptyTransaction, "empty")

	stx := signed(t, l, []transactionrecord.Operation{transferOp(l, "alice", "bob", 1)}, "alice")
	stx.Expiration = l.db.HeadTime() - 1
	_, err = l.PushTransaction(stx)
	assert.ErrorIs(t, err, fault.ErrTransactionExpired, "expired")

	stx.Expiration = l.db.HeadTime() + int64(l.db.Parameters().MaximumTimeUntilExpiration) + 1
	_, err = l.PushTransaction(stx)
	assert.ErrorIs(t, err, fault.ErrTransactionExpirationTooFar, "too far")

	virtual := &transactionrecord.WireOutResult{
		Account: idOf(l, "alice"),
		Amount:  protocol.NewAmount(1, protocol.CoreAsset),
	}
	_, err = l.PushTransaction(signed(t, l, []transactionrecord.Operation{virtual}, "alice"))
	assert.ErrorIs(t, err, fault.ErrVirtualOperation, "virtual")
	assert.True(t, fault.IsErrRecord(err), "structural")
}

func TestSignatures(t *testing.T) {
	l := setup(t)

	_, err := l.PushTransaction(signed(t, l, []transactionrecord.Operation{transferOp(l, "alice", "bob", 1)}, "bob"))
	assert.ErrorIs(t, err, fault.ErrMissingSignature, "wrong signer")

	_, err = l.PushTransaction(signed(t, l, []transactionrecord.Operation{transferOp(l, "alice", "bob", 1)}))
	assert.ErrorIs(t, err, fault.ErrMissingSignature, "unsigned")

	l.options.SkipSignatures = true
	_, err = l.PushTransaction(signed(t, l, []transactionrecord.Operation{transferOp(l, "alice", "bob", 1)}))
	assert.NoError(t, err, "signatures skipped")
}

func TestCoreFee(t *testing.T) {
	l := setup(t)
	require.NoError(t, l.db.ModifyGlobal(func(g *state.GlobalProperties) {
		g.Parameters.Fees = map[string]int64{"transfer": 10}
	}), "fee schedule")

	_, err := l.PushTransaction(signed(t, l, []transactionrecord.Operation{transferOp(l, "alice", "bob", 100)}, "alice"))
	assert.ErrorIs(t, err, fault.ErrFeeTooLow, "no fee")

	op := transferOp(l, "alice", "bob", 100)
	op.Fee = protocol.NewAmount(10, protocol.CoreAsset)
	_, err = l.PushTransaction(signed(t, l, []transactionrecord.Operation{op}, "alice"))
	require.NoError(t, err, "fee paid")

	assert.Equal(t, fixtures.InitialCore-110, balance(l, "alice", protocol.CoreAsset), "alice")
	core := fixtures.Asset(l.db, "CORE")
	dynamic, err := l.db.GetDynamicData(core)
	require.NoError(t, err, "core dynamic data")
	assert.Equal(t, int64(10), dynamic.AccumulatedFees, "collected")
}

func TestFeePoolFee(t *testing.T) {
	l := setup(t)
	web := fixtures.Asset(l.db, "WEB")
	alice := idOf(l, "alice")

	require.NoError(t, l.db.ModifyGlobal(func(g *state.GlobalProperties) {
		g.Parameters.Fees = map[string]int64{"transfer": 10}
	}), "fee schedule")
	require.NoError(t, l.db.AdjustBalance(alice, protocol.NewAmount(50, web.Id)), "fund web")
	require.NoError(t, l.db.AdjustSupply(web, 50), "web supply")

	op := transferOp(l, "alice", "bob", 100)
	op.Fee = protocol.NewAmount(10, web.Id)
	_, err := l.PushTransaction(signed(t, l, []transactionrecord.Operation{op}, "alice"))
	assert.ErrorIs(t, err, fault.ErrFeePoolInsufficient, "empty pool")

	dynamic, err := l.db.GetDynamicData(web)
	require.NoError(t, err, "web dynamic data")
	require.NoError(t, l.db.DynamicData.Modify(dynamic.Id, func(d *state.AssetDynamicData) {
		d.FeePool = 25
	}), "fund pool")

	op = transferOp(l, "alice", "bob", 100)
	op.Fee = protocol.NewAmount(10, web.Id)
	_, err = l.PushTransaction(signed(t, l, []transactionrecord.Operation{op}, "alice"))
	require.NoError(t, err, "fee from pool")

	assert.Equal(t, int64(40), balance(l, "alice", web.Id), "web fee")
	assert.Equal(t, fixtures.InitialCore-100, balance(l, "alice", protocol.CoreAsset), "core untouched by fee")

	dynamic, err = l.db.GetDynamicData(web)
	require.NoError(t, err, "web dynamic data")
	assert.Equal(t, int64(15), dynamic.FeePool, "pool paid")
	assert.Equal(t, int64(10), dynamic.AccumulatedFees, "web fees")
}

func TestSealAndGetBlocks(t *testing.T) {
	l := setup(t)

	_, err := l.PushTransaction(signed(t, l, []transactionrecord.Operation{transferOp(l, "alice", "bob", 100)}, "alice"))
	require.NoError(t, err, "push")

	block, err := l.SealBlock(fixtures.GenesisTime + 5)
	require.NoError(t, err, "seal")
	assert.Equal(t, uint64(1), block.Header.Number, "number")
	assert.Equal(t, 0, l.PendingCount(), "nothing pending")

	number, digest := l.Head()
	assert.Equal(t, uint64(1), number, "head")
	assert.Equal(t, block.Digest, digest, "head digest")
	assert.Equal(t, fixtures.GenesisTime+5, l.db.HeadTime(), "time")

	_, err = l.SealBlock(fixtures.GenesisTime + 10)
	require.NoError(t, err, "empty block")

	blocks, err := l.GetBlocks(1, 10)
	require.NoError(t, err, "get")
	require.Len(t, blocks, 2, "truncated at head")
	assert.Equal(t, block.Digest, blocks[0].Digest, "first")
	assert.Len(t, blocks[0].Transactions, 1, "transactions")
	assert.Equal(t, block.Digest, blocks[1].Header.PreviousBlock, "chained")

	txId, err := block.Transactions[0].Id()
	require.NoError(t, err, "id")
	n, found, err := l.TransactionBlock(txId)
	require.NoError(t, err, "lookup")
	assert.True(t, found, "found")
	assert.Equal(t, uint64(1), n, "in block one")

	for _, item := range []struct {
		start uint64
		count int
	}{
		{0, 1},
		{3, 1},
		{1, 0},
		{1, MaximumBlockCount + 1},
	} {
		_, err := l.GetBlocks(item.start, item.count)
		assert.True(t, fault.IsErrLength(err), "start: %d  count: %d", item.start, item.count)
	}

	_, err = l.SealBlock(fixtures.GenesisTime)
	assert.ErrorIs(t, err, fault.ErrInvalidBlockTime, "time went backwards")
	number, _ = l.Head()
	assert.Equal(t, uint64(2), number, "head unchanged")
}

func TestSealFailureKeepsPending(t *testing.T) {
	l := setup(t)

	stx := signed(t, l, []transactionrecord.Operation{transferOp(l, "alice", "bob", 100)}, "alice")
	_, err := l.PushTransaction(stx)
	require.NoError(t, err, "push")

	_, err = l.SealBlock(fixtures.GenesisTime - 1)
	assert.ErrorIs(t, err, fault.ErrInvalidBlockTime, "block before head")

	txId, err := stx.Id()
	require.NoError(t, err, "id")
	assert.Equal(t, 1, l.PendingCount(), "still pending")
	assert.True(t, l.IsPending(txId), "pending id")
	assert.Equal(t, fixtures.InitialCore-100, balance(l, "alice", protocol.CoreAsset), "alice")
	number, _ := l.Head()
	assert.Equal(t, uint64(0), number, "head unchanged")

	block, err := l.SealBlock(fixtures.GenesisTime + 5)
	require.NoError(t, err, "seal")
	assert.Len(t, block.Transactions, 1, "transaction sealed")
	assert.Equal(t, 0, l.PendingCount(), "nothing pending")
}

func TestApplyBlock(t *testing.T) {
	producer := setup(t)
	follower := setup(t)

	_, err := producer.PushTransaction(signed(t, producer, []transactionrecord.Operation{transferOp(producer, "alice", "bob", 100)}, "alice"))
	require.NoError(t, err, "push")
	block, err := producer.SealBlock(fixtures.GenesisTime + 5)
	require.NoError(t, err, "seal")

	// a pending transaction on the follower survives the block
	_, err = follower.PushTransaction(signed(t, follower, []transactionrecord.Operation{transferOp(follower, "bob", "alice", 7)}, "bob"))
	require.NoError(t, err, "follower push")

	require.NoError(t, follower.ApplyBlock(block), "apply")

	number, digest := follower.Head()
	assert.Equal(t, uint64(1), number, "head")
	assert.Equal(t, block.Digest, digest, "digest")
	assert.Equal(t, 1, follower.PendingCount(), "pending replayed")
	assert.Equal(t, fixtures.InitialCore-93, balance(follower, "alice", protocol.CoreAsset), "alice")
	assert.Equal(t, fixtures.InitialCore+93, balance(follower, "bob", protocol.CoreAsset), "bob")

	err = follower.ApplyBlock(block)
	assert.ErrorIs(t, err, fault.ErrBlockNumberMismatch, "applied twice")
	assert.Equal(t, 1, follower.PendingCount(), "pending kept")
}

func TestApplyBlockRejects(t *testing.T) {
	producer := setup(t)

	_, err := producer.PushTransaction(signed(t, producer, []transactionrecord.Operation{transferOp(producer, "alice", "bob", 100)}, "alice"))
	require.NoError(t, err, "push")
	block, err := producer.SealBlock(fixtures.GenesisTime + 5)
	require.NoError(t, err, "seal")

	follower := setup(t)
	tampered := *block
	tampered.Header.PreviousBlock[0] ^= 0xff
	assert.ErrorIs(t, follower.ApplyBlock(&tampered), fault.ErrPreviousBlockMismatch, "previous")

	tampered = *block
	tampered.Header.MerkleRoot[0] ^= 0xff
	assert.ErrorIs(t, follower.ApplyBlock(&tampered), fault.ErrMerkleRootMismatch, "merkle")

	// a block whose transaction fails leaves no trace
	follower = setup(t)
	_, err = follower.PushTransaction(signed(t, follower, []transactionrecord.Operation{transferOp(follower, "alice", "bob", fixtures.InitialCore)}, "alice"))
	require.NoError(t, err, "drain alice")
	_, err = follower.SealBlock(fixtures.GenesisTime + 1)
	require.NoError(t, err, "seal drain")

	number, digest := follower.Head()
	failing, err := blockrecord.New(number+1, digest, fixtures.GenesisTime+5, []*transactionrecord.SignedTransaction{
		signed(t, follower, []transactionrecord.Operation{transferOp(follower, "alice", "bob", 100)}, "alice"),
	})
	require.NoError(t, err, "failing block")
	err = follower.ApplyBlock(failing)
	assert.ErrorIs(t, err, fault.ErrInsufficientBalance, "overdraft")

	after, _ := follower.Head()
	assert.Equal(t, number, after, "head unchanged")
	assert.Equal(t, fixtures.InitialCore*2, balance(follower, "bob", protocol.CoreAsset), "bob unchanged")
	assert.Equal(t, fixtures.GenesisTime+1, follower.db.HeadTime(), "time unchanged")
}

func TestMaintenance(t *testing.T) {
	l := setup(t)
	vault := idOf(l, "vault-one")
	dasc := fixtures.Asset(l.db, "DASC")

	require.NoError(t, l.db.AddSpent(vault, dasc.Id, 500), "spend")
	next := l.db.DynamicProperties().NextMaintenanceTime
	interval := int64(l.db.Parameters().MaintenanceInterval)

	_, err := l.SealBlock(next - 1)
	require.NoError(t, err, "before maintenance")
	spent, _ := l.db.FindBalance(vault, dasc.Id)
	assert.Equal(t, int64(500), spent.Spent, "not yet reset")

	_, err = l.SealBlock(next + 2*interval)
	require.NoError(t, err, "after maintenance")
	spent, _ = l.db.FindBalance(vault, dasc.Id)
	assert.Equal(t, int64(0), spent.Spent, "reset")
	assert.Equal(t, next+3*interval, l.db.DynamicProperties().NextMaintenanceTime, "skipped intervals")
}

func TestExpiredTransactionsPruned(t *testing.T) {
	l := setup(t)

	_, err := l.PushTransaction(signed(t, l, []transactionrecord.Operation{transferOp(l, "alice", "bob", 1)}, "alice"))
	require.NoError(t, err, "push")
	_, err = l.SealBlock(fixtures.GenesisTime + 5)
	require.NoError(t, err, "seal")
	assert.Equal(t, 1, l.db.Transactions.Size(), "kept until expiry")

	_, err = l.SealBlock(fixtures.GenesisTime + 61)
	require.NoError(t, err, "seal")
	assert.Equal(t, 0, l.db.Transactions.Size(), "pruned")
}

func TestVirtualOperationHistory(t *testing.T) {
	l := setup(t)
	web := fixtures.Asset(l.db, "WEB")
	alice := idOf(l, "alice")
	require.NoError(t, l.db.AdjustBalance(alice, protocol.NewAmount(500, web.Id)), "fund web")
	require.NoError(t, l.db.AdjustSupply(web, 500), "web supply")

	processed, err := l.PushTransaction(signed(t, l, []transactionrecord.Operation{
		&transactionrecord.WireOut{
			Account: alice,
			Asset:   protocol.NewAmount(200, web.Id),
			Memo:    "payout",
		},
	}, "alice"))
	require.NoError(t, err, "wire out")
	holder := processed.Results[0].Id

	_, err = l.PushTransaction(signed(t, l, []transactionrecord.Operation{
		&transactionrecord.WireOutComplete{
			WireOutHandler: idOf(l, "wire-handler"),
			Holder:         holder,
		},
	}, "wire-handler"))
	require.NoError(t, err, "complete")

	_, err = l.SealBlock(fixtures.GenesisTime + 5)
	require.NoError(t, err, "seal")

	history, err := l.GetOperationHistory(1)
	require.NoError(t, err, "history")
	require.Len(t, history, 3, "two operations and one virtual")
	assert.True(t, history[2].IsVirtual(), "virtual last")
	assert.Equal(t, uint16(1), history[2].TrxInBlock, "emitted by the second transaction")
	assert.Equal(t, uint32(1), history[2].VirtualOp, "first virtual")

	selected, err := l.GetBlocksWithVirtualOperations(1, 1, []transactionrecord.TagType{transactionrecord.WireOutResultTag})
	require.NoError(t, err, "virtual")
	require.Len(t, selected, 1, "one block")
	require.Len(t, selected[0].Operations, 1, "one result")
	result, ok := selected[0].Operations[0].Operation.Operation.(*transactionrecord.WireOutResult)
	require.True(t, ok, "wire out result")
	assert.True(t, result.Completed, "completed")
	assert.Equal(t, int64(200), result.Amount.Amount, "amount")

	selected, err = l.GetBlocksWithVirtualOperations(1, 1, []transactionrecord.TagType{transactionrecord.AssetSettleFillTag})
	require.NoError(t, err, "filtered")
	assert.Empty(t, selected[0].Operations, "nothing of that tag")
}

func TestReopen(t *testing.T) {
	name := filepath.Join(t.TempDir(), "ledger.leveldb")

	store, err := storage.Open(name, false)
	require.NoError(t, err, "create")
	l, err := Open(store, fixtures.Genesis(), Options{})
	require.NoError(t, err, "genesis")

	_, err = l.PushTransaction(signed(t, l, []transactionrecord.Operation{transferOp(l, "alice", "bob", 100)}, "alice"))
	require.NoError(t, err, "push")
	block, err := l.SealBlock(fixtures.GenesisTime + 5)
	require.NoError(t, err, "seal")
	nextAccount := l.db.Accounts.NextInstance()
	store.Close()

	store, err = storage.Open(name, false)
	require.NoError(t, err, "reopen")
	defer store.Close()
	l, err = Open(store, fixtures.Genesis(), Options{})
	require.NoError(t, err, "restore")

	number, digest := l.Head()
	assert.Equal(t, uint64(1), number, "head")
	assert.Equal(t, block.Digest, digest, "digest")
	assert.Equal(t, fixtures.InitialCore+100, balance(l, "bob", protocol.CoreAsset), "bob")
	assert.Equal(t, nextAccount, l.db.Accounts.NextInstance(), "allocator")

	// names resolve through the rebuilt orderings
	_, ok := l.db.FindAccountByName("alice")
	assert.True(t, ok, "ordering restored")

	// dedup survives the restart
	_, err = l.PushTransaction(block.Transactions[0])
	assert.ErrorIs(t, err, fault.ErrDuplicateTransaction, "replay after restart")
}

func TestRestore(t *testing.T) {
	empty, err := storage.OpenMemory()
	require.NoError(t, err, "open storage")
	defer empty.Close()

	_, err = Restore(empty, Options{})
	assert.ErrorIs(t, err, fault.ErrNotFoundCheckpoint, "restored an empty store")

	_, err = Restore(nil, Options{})
	assert.ErrorIs(t, err, fault.ErrDatabaseIsNotSet, "restored without a store")

	store, err := storage.OpenMemory()
	require.NoError(t, err, "open storage")
	defer store.Close()
	l, err := Open(store, fixtures.Genesis(), Options{})
	require.NoError(t, err, "genesis")
	block, err := l.SealBlock(fixtures.GenesisTime + 5)
	require.NoError(t, err, "seal")

	restored, err := Restore(store, Options{})
	require.NoError(t, err, "restore")
	number, digest := restored.Head()
	assert.Equal(t, uint64(1), number, "head")
	assert.Equal(t, block.Digest, digest, "digest")
}
