package community

import (
	"errors"
	"testing"

	"github.com/rollnconnect/rollconnect/internal/apperr"
)

func strptr(s string) *string { return &s }

func TestDefaultProfile(t *testing.T) {
	svc, _ := newTestService(t)
	p := svc.Profile()
	if p.Username != "@username" {
		t.Errorf("unexpected default username: %q", p.Username)
	}
	if p.Posts == nil || p.JoinedEvents == nil || p.SavedSpots == nil {
		t.Error("profile slices must never be nil")
	}
}

func TestUpdateProfileUsernamePrefix(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.UpdateProfile(UpdateProfileInput{Username: strptr("skater_jo")})
	if err != nil {
		t.Fatal(err)
	}
	if p.Username != "@skater_jo" {
		t.Errorf("username should gain @ prefix, got %q", p.Username)
	}

	// Already-prefixed input is not double-prefixed.
	p, err = svc.UpdateProfile(UpdateProfileInput{Username: strptr("@skater_jo")})
	if err != nil {
		t.Fatal(err)
	}
	if p.Username != "@skater_jo" {
		t.Errorf("prefix should not stack, got %q", p.Username)
	}

	if _, err := svc.UpdateProfile(UpdateProfileInput{Username: strptr("  ")}); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("blank username should be rejected, got %v", err)
	}
}

func TestUpdateProfilePartialEdit(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.UpdateProfile(UpdateProfileInput{Bio: strptr("street skater")}); err != nil {
		t.Fatal(err)
	}
	p := svc.Profile()
	if p.Bio != "street skater" {
		t.Errorf("bio not updated: %q", p.Bio)
	}
	if p.Username != "@username" {
		t.Errorf("omitted field changed: %q", p.Username)
	}
}

func TestCreatePost(t *testing.T) {
	svc, _ := newTestService(t)

	post, err := svc.CreatePost(CreatePostInput{VideoURL: "https://clips.example/a.mp4", Caption: "first laps"})
	if err != nil {
		t.Fatal(err)
	}
	if post.ID == "" {
		t.Error("post must get an id")
	}
	if post.Likes != 0 || len(post.Comments) != 0 {
		t.Errorf("new post must start empty: %+v", post)
	}

	if got := svc.Counts(); got.Posts != 1 {
		t.Errorf("post count not updated: %+v", got)
	}

	if _, err := svc.CreatePost(CreatePostInput{Caption: "no video"}); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("missing video url should be rejected, got %v", err)
	}
}

func TestLikePostSaturatesAtOne(t *testing.T) {
	svc, _ := newTestService(t)
	post, err := svc.CreatePost(CreatePostInput{VideoURL: "https://clips.example/a.mp4"})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		post, err = svc.LikePost(post.ID)
		if err != nil {
			t.Fatal(err)
		}
	}
	if post.Likes != 1 {
		t.Errorf("likes must cap at 1, got %d", post.Likes)
	}

	if _, err := svc.LikePost("nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCommentPost(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.UpdateProfile(UpdateProfileInput{Username: strptr("jo")}); err != nil {
		t.Fatal(err)
	}
	post, err := svc.CreatePost(CreatePostInput{VideoURL: "https://clips.example/a.mp4"})
	if err != nil {
		t.Fatal(err)
	}

	post, err = svc.CommentPost(post.ID, "clean line!")
	if err != nil {
		t.Fatal(err)
	}
	if len(post.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(post.Comments))
	}
	if post.Comments[0].Author != "@jo" || post.Comments[0].Text != "clean line!" {
		t.Errorf("unexpected comment: %+v", post.Comments[0])
	}

	if _, err := svc.CommentPost(post.ID, "   "); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("blank comment should be rejected, got %v", err)
	}
	if _, err := svc.CommentPost("nope", "hi"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCountsMirrorSets(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.JoinEvent("event-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.JoinEvent("event-1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.SaveSpot("spot-1"); err != nil {
		t.Fatal(err)
	}

	counts := svc.Counts()
	if counts.JoinedEvents != 1 || counts.SavedSpots != 1 || counts.Posts != 0 {
		t.Errorf("unexpected counts: %+v", counts)
	}

	p := svc.Profile()
	if len(p.JoinedEvents) != 1 || len(p.SavedSpots) != 1 {
		t.Errorf("profile mirrors out of sync: %+v", p)
	}
}
