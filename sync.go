package main

// SyncBackend mirrors the todo list to a remote tracker. The only
// implementation is the local no-op; bidirectional GitHub Projects sync
// never made it past this stub.
type SyncBackend interface {
	Push(todos []Todo) error
	Pull() ([]Todo, error)
}

type localSync struct{}

func NewSyncBackend() SyncBackend {
	return localSync{}
}

func (localSync) Push([]Todo) error {
	return nil
}

func (localSync) Pull() ([]Todo, error) {
	return nil, nil
}
