package usecase

import "collab-notifier/domain/model"

// ComputeNewVideos returns the stubs of newStubs whose URL is not in
// previousStubs. A nil previousStubs means there was no earlier snapshot,
// so every stub is new.
func ComputeNewVideos(newStubs model.VideoStubSet, previousStubs *model.VideoStubSet) model.VideoStubSet {
	result := make(model.VideoStubSet, len(newStubs))
	for u, stub := range newStubs {
		if previousStubs != nil && previousStubs.Contains(u) {
			continue
		}
		result[u] = stub
	}
	return result
}
