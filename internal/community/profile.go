package community

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/rollnconnect/rollconnect/internal/apperr"
	"github.com/rollnconnect/rollconnect/internal/metrics"
	"github.com/rollnconnect/rollconnect/internal/models"
)

// UpdateProfileInput carries profile edits. Nil fields are left
// unchanged; the username is always re-prefixed with "@".
type UpdateProfileInput struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar_url"`
	ClipURL  *string `json:"clip_url"`
}

// Validate enforces the edit contract: a username, when provided,
// must be non-blank.
func (r UpdateProfileInput) Validate() error {
	if r.Username != nil && strings.TrimSpace(*r.Username) == "" {
		return fmt.Errorf("username: cannot be blank")
	}
	return nil
}

// CreatePostInput is the structured request for creating a post.
type CreatePostInput struct {
	VideoURL string `json:"video_url"`
	Caption  string `json:"caption"`
}

// Validate enforces the post contract.
func (r CreatePostInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.VideoURL, validation.Required),
	)
}

// Profile returns the current profile with the saved/joined id sets
// mirrored in.
func (s *Service) Profile() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileLocked()
}

func (s *Service) profileLocked() models.Profile {
	p := s.profile
	p.Posts = append([]models.Post(nil), s.profile.Posts...)
	p.JoinedEvents = append([]string(nil), s.joined...)
	p.SavedSpots = append([]string(nil), s.saved...)
	return p
}

// Counts derives the three profile display counters.
func (s *Service) Counts() models.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Counts{
		Posts:        len(s.profile.Posts),
		JoinedEvents: len(s.joined),
		SavedSpots:   len(s.saved),
	}
}

// UpdateProfile applies profile edits and persists.
func (s *Service) UpdateProfile(in UpdateProfileInput) (models.Profile, error) {
	if err := in.Validate(); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %s", apperr.ErrInvalid, err)
	}

	s.mu.Lock()
	if in.Username != nil {
		s.profile.Username = "@" + strings.TrimPrefix(strings.TrimSpace(*in.Username), "@")
	}
	if in.Bio != nil {
		s.profile.Bio = *in.Bio
	}
	if in.Avatar != nil {
		s.profile.AvatarURL = *in.Avatar
	}
	if in.ClipURL != nil {
		s.profile.ClipURL = *in.ClipURL
	}
	s.persistLocked()
	p := s.profileLocked()
	s.mu.Unlock()

	s.publish("profile.updated", p.Username, "")
	return p, nil
}

// CreatePost adds a new post with zero likes and no comments.
func (s *Service) CreatePost(in CreatePostInput) (models.Post, error) {
	if err := in.Validate(); err != nil {
		return models.Post{}, fmt.Errorf("%w: %s", apperr.ErrInvalid, err)
	}

	post := models.Post{
		ID:       uuid.NewString(),
		VideoURL: in.VideoURL,
		Caption:  in.Caption,
		Comments: []models.Comment{},
	}

	s.mu.Lock()
	s.profile.Posts = append(s.profile.Posts, post)
	s.persistLocked()
	s.mu.Unlock()

	s.publish("profile.updated", post.ID, "")
	return post, nil
}

// LikePost increments the post's likes up to the ceiling of one.
// Further calls are no-ops — one like per piece, no unlike.
func (s *Service) LikePost(id string) (models.Post, error) {
	s.mu.Lock()
	post := s.findPostLocked(id)
	if post == nil {
		s.mu.Unlock()
		return models.Post{}, apperr.ErrNotFound
	}
	liked := false
	if post.Likes < 1 {
		post.Likes++
		liked = true
		s.persistLocked()
	}
	out := *post
	s.mu.Unlock()

	if liked {
		metrics.PostLikes.Inc()
		s.publish("profile.updated", id, "")
	}
	return out, nil
}

// CommentPost appends a comment authored by the profile owner. Empty
// text is rejected.
func (s *Service) CommentPost(id, text string) (models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return models.Post{}, fmt.Errorf("%w: comment text is required", apperr.ErrInvalid)
	}

	s.mu.Lock()
	post := s.findPostLocked(id)
	if post == nil {
		s.mu.Unlock()
		return models.Post{}, apperr.ErrNotFound
	}
	post.Comments = append(post.Comments, models.Comment{
		Author: s.profile.Username,
		Text:   text,
	})
	s.persistLocked()
	out := *post
	s.mu.Unlock()

	metrics.PostComments.Inc()
	s.publish("profile.updated", id, "")
	return out, nil
}

func (s *Service) findPostLocked(id string) *models.Post {
	for i := range s.profile.Posts {
		if s.profile.Posts[i].ID == id {
			return &s.profile.Posts[i]
		}
	}
	return nil
}
