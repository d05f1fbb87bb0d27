package main

import (
	"errors"
	"testing"

	gomock "go.uber.org/mock/gomock"
)

func TestAnnounceResultPostsToConfiguredChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPoster := NewMockSlackPoster(ctrl)
	mockPoster.EXPECT().
		PostMessage("C0123456789", gomock.Any()).
		Return("C0123456789", "timestamp", nil).
		Times(1)

	announcer := NewResultAnnouncer(mockPoster, "C0123456789")
	announcer.AnnounceResult("ABCDE", 0, 100)
}

func TestAnnounceResultSwallowsPostErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPoster := NewMockSlackPoster(ctrl)
	mockPoster.EXPECT().
		PostMessage(gomock.Any(), gomock.Any()).
		Return("", "", errors.New("channel_not_found")).
		Times(1)

	// The announcer only logs failures; a broken Slack setup must never
	// affect a running match.
	announcer := NewResultAnnouncer(mockPoster, "C0123456789")
	announcer.AnnounceResult("ABCDE", 1, 0)
}
