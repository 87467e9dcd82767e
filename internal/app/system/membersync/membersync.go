// Package membersync keeps the member records embedded in group documents in
// step with the users' profiles.
//
// Every write made here replaces the whole members array of a group after
// reading it. Two writers racing on the same group (a sync and an AddMember,
// or two syncs) resolve as last-writer-wins over the entire array; the loser's
// change to other members is silently dropped. Nothing here detects or
// repairs that.
package membersync

import (
	"context"
	"time"

	"github.com/dalemusser/huddle/internal/app/system/syncmetrics"
	"github.com/dalemusser/huddle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Operation labels used for logs and metrics.
const (
	OpEnsureCreator = "ensure_creator"
	OpSyncProfile   = "sync_profile"
	OpUpdatePhoto   = "update_photo"
)

// MaxConcurrentWrites bounds how many group rewrites one call runs at once.
const MaxConcurrentWrites = 8

// GroupStore is the subset of groupstore.Store the synchronizer needs.
type GroupStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	ListActive(ctx context.Context) ([]models.Group, error)
	ReplaceMembers(ctx context.Context, id primitive.ObjectID, members []models.Member) error
}

// Synchronizer propagates profile changes into group member records.
type Synchronizer struct {
	groups  GroupStore
	metrics syncmetrics.Recorder
	log     *zap.Logger
}

// New returns a Synchronizer. A nil recorder or logger is replaced by a no-op.
func New(groups GroupStore, rec syncmetrics.Recorder, logger *zap.Logger) *Synchronizer {
	if rec == nil {
		rec = syncmetrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synchronizer{groups: groups, metrics: rec, log: logger}
}

// EnsureCreatorInGroup makes sure the group's members contain creator with the
// creator's current name and photo. A missing group is a no-op.
//
// An existing record keeps its other fields (bio); name and photo are
// overwritten, and the photo is removed when the profile has none.
func (s *Synchronizer) EnsureCreatorInGroup(ctx context.Context, groupID primitive.ObjectID, creator models.Profile) error {
	start := time.Now()
	err := s.ensureCreator(ctx, groupID, creator)
	s.finish(OpEnsureCreator, start, err)
	return err
}

func (s *Synchronizer) ensureCreator(ctx context.Context, groupID primitive.ObjectID, creator models.Profile) error {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		s.log.Debug("membersync: group not found, skipping",
			zap.String("group_id", groupID.Hex()))
		return nil
	}
	s.metrics.RecordScan(OpEnsureCreator, 1)

	members := append([]models.Member(nil), g.Members...)
	if i := g.MemberIndex(creator.UserID); i < 0 {
		members = append(members, creator.Member())
	} else {
		members[i].Name = creator.MemberName()
		members[i].PhotoURL = creator.PhotoURL
	}

	if err := s.groups.ReplaceMembers(ctx, g.ID, members); err != nil {
		return err
	}
	s.metrics.RecordRewrite(OpEnsureCreator)
	return nil
}

// EnsureCreatorInAllGroups runs EnsureCreatorInGroup for every group in groups
// that creator created. The groups are handled concurrently; the call returns
// once all of them finish, with the first error if any failed. Writes that
// already succeeded are kept. At most MaxConcurrentWrites run at a time.
func (s *Synchronizer) EnsureCreatorInAllGroups(ctx context.Context, groups []models.Group, creator models.Profile) error {
	start := time.Now()

	var eg errgroup.Group
	eg.SetLimit(MaxConcurrentWrites)
	for _, g := range groups {
		if g.CreatedBy != creator.UserID {
			continue
		}
		eg.Go(func() error {
			return s.ensureCreator(ctx, g.ID, creator)
		})
	}
	err := eg.Wait()

	s.finish(OpEnsureCreator, start, err)
	return err
}

// SyncProfile rewrites userID's name and photo in every active group that
// contains them. A nil photoURL removes the cached photo. Groups without
// the user are not written.
func (s *Synchronizer) SyncProfile(ctx context.Context, userID, displayName string, photoURL *string) error {
	return s.rewriteMember(ctx, OpSyncProfile, userID, func(m *models.Member) {
		m.Name = displayName
		m.PhotoURL = ""
		if photoURL != nil {
			m.PhotoURL = *photoURL
		}
	})
}

// UpdateMemberPhoto is the narrower form of SyncProfile used after a photo
// upload: the photo is only replaced when photoURL is non-nil and the name
// only when displayName is non-empty.
func (s *Synchronizer) UpdateMemberPhoto(ctx context.Context, userID string, photoURL *string, displayName string) error {
	return s.rewriteMember(ctx, OpUpdatePhoto, userID, func(m *models.Member) {
		if photoURL != nil {
			m.PhotoURL = *photoURL
		}
		if displayName != "" {
			m.Name = displayName
		}
	})
}

// rewriteMember applies patch to userID's record in each active group that
// has one, one goroutine per group and at most MaxConcurrentWrites at once.
func (s *Synchronizer) rewriteMember(ctx context.Context, op, userID string, patch func(*models.Member)) error {
	start := time.Now()

	groups, err := s.groups.ListActive(ctx)
	if err != nil {
		s.finish(op, start, err)
		return err
	}
	s.metrics.RecordScan(op, len(groups))

	var eg errgroup.Group
	eg.SetLimit(MaxConcurrentWrites)
	for _, g := range groups {
		i := g.MemberIndex(userID)
		if i < 0 {
			continue
		}
		eg.Go(func() error {
			members := append([]models.Member(nil), g.Members...)
			patch(&members[i])
			if err := s.groups.ReplaceMembers(ctx, g.ID, members); err != nil {
				s.log.Warn("membersync: rewrite failed",
					zap.String("op", op),
					zap.String("group_id", g.ID.Hex()),
					zap.String("user_id", userID),
					zap.Error(err))
				return err
			}
			s.metrics.RecordRewrite(op)
			return nil
		})
	}
	err = eg.Wait()

	s.finish(op, start, err)
	return err
}

func (s *Synchronizer) finish(op string, start time.Time, err error) {
	d := time.Since(start)
	s.metrics.RecordDuration(op, d)
	if err != nil {
		s.metrics.RecordFailure(op)
		s.log.Error("membersync failed", zap.String("op", op), zap.Duration("took", d), zap.Error(err))
		return
	}
	s.log.Debug("membersync done", zap.String("op", op), zap.Duration("took", d))
}
