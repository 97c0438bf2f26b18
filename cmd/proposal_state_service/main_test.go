package main

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"collector_dao/internal/db/models"
	mock_repositories "collector_dao/internal/db/repositories/mocks"
	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeStates map[common.Hash]governance.ProposalState

func (s fakeStates) State(_ context.Context, id common.Hash) (governance.ProposalState, error) {
	state, ok := s[id]
	if !ok {
		return governance.StateUnknown, governance.ErrUnknownProposal
	}
	return state, nil
}

type announcement struct {
	id    common.Hash
	state governance.ProposalState
}

type recordingNotifier struct {
	announcements []announcement
	err           error
}

func (n *recordingNotifier) NotifyResolution(proposal *governance.Proposal, state governance.ProposalState) error {
	if n.err != nil {
		return n.err
	}
	n.announcements = append(n.announcements, announcement{id: proposal.ID, state: state})
	return nil
}

func newModel(seed byte, announced string) *models.Proposal {
	model := models.NewProposal(&governance.Proposal{
		ID:       common.Hash{seed},
		Proposer: common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		Bundle: governance.Bundle{
			Targets:   []common.Address{{0x01}},
			Values:    []*big.Int{big.NewInt(1)},
			Calldatas: [][]byte{{}},
		},
	})
	model.AnnouncedState = announced
	return model
}

func TestNeedsAnnouncement(t *testing.T) {
	assert.False(t, needsAnnouncement(newModel(1, ""), governance.StateActive))
	assert.True(t, needsAnnouncement(newModel(1, ""), governance.StateSucceeded))
	assert.True(t, needsAnnouncement(newModel(1, ""), governance.StateDefeated))
	assert.False(t, needsAnnouncement(newModel(1, "succeeded"), governance.StateSucceeded))
	assert.True(t, needsAnnouncement(newModel(1, "succeeded"), governance.StateExecuted))
	assert.False(t, needsAnnouncement(newModel(1, "defeated"), governance.StateDefeated))
	assert.True(t, needsAnnouncement(newModel(1, "pending"), governance.StateDefeated))
}

func TestAnnounceResolutions_AnnouncesResolvedOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	active, defeated, executed, stale := newModel(1, ""), newModel(2, ""), newModel(3, "succeeded"), newModel(4, "succeeded")
	states := fakeStates{
		common.Hash{1}: governance.StateActive,
		common.Hash{2}: governance.StateDefeated,
		common.Hash{3}: governance.StateExecuted,
		common.Hash{4}: governance.StateSucceeded,
	}

	proposalRepo := mock_repositories.NewMockProposalRepository(ctrl)
	proposalRepo.EXPECT().GetManyUnannounced(gomock.Any()).Return([]*models.Proposal{active, defeated, executed, stale}, nil)
	proposalRepo.EXPECT().MarkAnnounced(gomock.Any(), defeated.ID, governance.StateDefeated).Return(nil)
	proposalRepo.EXPECT().MarkAnnounced(gomock.Any(), executed.ID, governance.StateExecuted).Return(nil)

	notifier := &recordingNotifier{}
	count := announceResolutions(context.Background(), proposalRepo, states, notifier, zap.NewNop().Sugar())

	assert.Equal(t, 2, count)
	assert.Equal(t, []announcement{
		{id: common.Hash{2}, state: governance.StateDefeated},
		{id: common.Hash{3}, state: governance.StateExecuted},
	}, notifier.announcements)
}

func TestAnnounceResolutions_NotifyFailureIsRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mock_repositories.NewMockProposalRepository(ctrl)
	proposalRepo.EXPECT().GetManyUnannounced(gomock.Any()).Return([]*models.Proposal{newModel(2, "")}, nil)
	proposalRepo.EXPECT().MarkAnnounced(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	notifier := &recordingNotifier{err: errors.New("telegram down")}
	count := announceResolutions(context.Background(), proposalRepo, fakeStates{common.Hash{2}: governance.StateDefeated}, notifier, zap.NewNop().Sugar())

	assert.Equal(t, 0, count)
}

func TestAnnounceResolutions_SkipsUnreadableProposals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	broken := newModel(5, "")
	broken.Actions[0].Value = "not-a-number"

	proposalRepo := mock_repositories.NewMockProposalRepository(ctrl)
	proposalRepo.EXPECT().GetManyUnannounced(gomock.Any()).Return([]*models.Proposal{broken, newModel(6, "")}, nil)

	notifier := &recordingNotifier{}
	count := announceResolutions(context.Background(), proposalRepo, fakeStates{}, notifier, zap.NewNop().Sugar())

	assert.Equal(t, 0, count)
	assert.Empty(t, notifier.announcements)
}

func TestAnnounceResolutions_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mock_repositories.NewMockProposalRepository(ctrl)
	proposalRepo.EXPECT().GetManyUnannounced(gomock.Any()).Return(nil, errors.New("db down"))

	count := announceResolutions(context.Background(), proposalRepo, fakeStates{}, &recordingNotifier{}, zap.NewNop().Sugar())
	assert.Equal(t, 0, count)
}
