package event

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectSink struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	deploys []DeployRecord
	rounds  []RoundRecord
	issues  []IssueRecord
	fail    bool
}

func (s *collectSink) HandleDeploy(r DeployRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.wg.Done()
	if s.fail {
		return errors.New("db down")
	}
	s.deploys = append(s.deploys, r)
	return nil
}

func (s *collectSink) HandleRound(r RoundRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.wg.Done()
	if s.fail {
		return errors.New("db down")
	}
	s.rounds = append(s.rounds, r)
	return nil
}

func (s *collectSink) HandleIssue(r IssueRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.wg.Done()
	if s.fail {
		return errors.New("db down")
	}
	s.issues = append(s.issues, r)
	return nil
}

func (s *collectSink) wait(t *testing.T) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for records")
	}
}

func TestDispatcherDeliversRecords(t *testing.T) {
	sink := &collectSink{}
	d, err := NewDispatcher(sink, 4)
	require.NoError(t, err)
	defer d.Stop()

	colAddr := common.BigToAddress(common.Big1)

	sink.wg.Add(3)
	d.EmitDeploy(DeployRecord{Address: colAddr, Name: "Art", Symbol: "ART", TotalCapacity: 100})
	d.EmitRound(RoundRecord{Collection: colAddr, RoundID: 0, Action: RoundActionCreated, Capacity: 10})
	d.EmitIssue(IssueRecord{Collection: colAddr, ItemID: 1, RoundID: 0})
	sink.wait(t)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.deploys, 1)
	assert.Equal(t, "Art", sink.deploys[0].Name)
	require.Len(t, sink.rounds, 1)
	assert.Equal(t, RoundActionCreated, sink.rounds[0].Action)
	require.Len(t, sink.issues, 1)
	assert.Equal(t, uint64(1), sink.issues[0].ItemID)
}

func TestDispatcherDeliversBurst(t *testing.T) {
	sink := &collectSink{}
	d, err := NewDispatcher(sink, 2)
	require.NoError(t, err)
	defer d.Stop()

	const n = 64
	sink.wg.Add(n)
	for i := uint64(1); i <= n; i++ {
		d.EmitIssue(IssueRecord{ItemID: i})
	}
	sink.wait(t)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Len(t, sink.issues, n)
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	sink := &collectSink{fail: true}
	d, err := NewDispatcher(sink, 2)
	require.NoError(t, err)
	defer d.Stop()

	sink.wg.Add(1)
	d.EmitIssue(IssueRecord{ItemID: 1})
	sink.wait(t)

	sink.mu.Lock()
	sink.fail = false
	sink.mu.Unlock()

	sink.wg.Add(1)
	d.EmitIssue(IssueRecord{ItemID: 2})
	sink.wait(t)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.issues, 1)
	assert.Equal(t, uint64(2), sink.issues[0].ItemID)
}

func TestDispatcherDefaultPoolSize(t *testing.T) {
	d, err := NewDispatcher(&collectSink{}, 0)
	require.NoError(t, err)
	d.Stop()
}
