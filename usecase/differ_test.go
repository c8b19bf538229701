package usecase_test

import (
	"fmt"
	"math/rand"
	"testing"

	"collab-notifier/domain/model"
	"collab-notifier/usecase"

	"github.com/stretchr/testify/assert"
)

func stubs(ids ...string) []model.VideoStub {
	out := make([]model.VideoStub, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.VideoStub{URL: model.VideoURL("https://www.youtube.com/watch?v=" + id)})
	}
	return out
}

func TestComputeNewVideos_SetDifference(t *testing.T) {
	newSet := model.NewVideoStubSet(stubs("a", "b", "c", "d")...)
	previous := model.NewVideoStubSet(stubs("b", "d", "x")...)

	got := usecase.ComputeNewVideos(newSet, &previous)

	assert.ElementsMatch(t, []model.VideoURL{
		"https://www.youtube.com/watch?v=a",
		"https://www.youtube.com/watch?v=c",
	}, got.URLs())
}

func TestComputeNewVideos_KeepsCountsFromNewSnapshot(t *testing.T) {
	watch := int64(42)
	u := model.VideoURL("https://www.youtube.com/watch?v=a")
	newSet := model.NewVideoStubSet(model.VideoStub{URL: u, WatchCount: &watch})
	previous := model.NewVideoStubSet()

	got := usecase.ComputeNewVideos(newSet, &previous)

	if assert.Contains(t, got, u) {
		assert.Equal(t, int64(42), *got[u].WatchCount)
	}
}

func TestComputeNewVideos_NoPrevious(t *testing.T) {
	newSet := model.NewVideoStubSet(stubs("a", "b")...)

	got := usecase.ComputeNewVideos(newSet, nil)

	assert.Equal(t, newSet, got)
}

func TestComputeNewVideos_EmptyInputs(t *testing.T) {
	empty := model.NewVideoStubSet()

	assert.Empty(t, usecase.ComputeNewVideos(empty, nil))
	assert.Empty(t, usecase.ComputeNewVideos(empty, &empty))

	all := model.NewVideoStubSet(stubs("a")...)
	assert.Len(t, usecase.ComputeNewVideos(all, &empty), 1)
	assert.Empty(t, usecase.ComputeNewVideos(all, &all))
}

func TestComputeNewVideos_OrderIndependentAndIdempotent(t *testing.T) {
	ids := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		ids = append(ids, fmt.Sprintf("v%02d", i))
	}
	newList := stubs(ids[:40]...)
	prevList := stubs(ids[20:]...)

	base := model.NewVideoStubSet(newList...)
	prev := model.NewVideoStubSet(prevList...)
	want := usecase.ComputeNewVideos(base, &prev)
	assert.Len(t, want, 20)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		r.Shuffle(len(newList), func(a, b int) { newList[a], newList[b] = newList[b], newList[a] })
		r.Shuffle(len(prevList), func(a, b int) { prevList[a], prevList[b] = prevList[b], prevList[a] })

		shuffledNew := model.NewVideoStubSet(newList...)
		shuffledPrev := model.NewVideoStubSet(prevList...)
		assert.Equal(t, want, usecase.ComputeNewVideos(shuffledNew, &shuffledPrev))
	}

	assert.Equal(t, want, usecase.ComputeNewVideos(base, &prev))
	assert.Equal(t, want, usecase.ComputeNewVideos(want, &prev))
}
