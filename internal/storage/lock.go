package storage

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/lease"
	"github.com/rs/zerolog/log"
)

const (
	locksContainer = "locks"
	lockBlob       = "expiration_lock.txt"
)

// LeaseLock provides best-effort cross-process mutual exclusion through an
// infinite-duration lease on a shared blob. Acquisition is non-blocking: when
// the lease is held elsewhere the caller is expected to skip its run.
type LeaseLock struct {
	store       *BlobStore
	leaseClient *lease.BlobClient
}

func NewLeaseLock(store *BlobStore) (*LeaseLock, error) {
	blobClient := store.client.ServiceClient().NewContainerClient(locksContainer).NewBlobClient(lockBlob)
	leaseClient, err := lease.NewBlobClient(blobClient, nil)
	if err != nil {
		return nil, fmt.Errorf("creating lease client: %w", err)
	}
	return &LeaseLock{store: store, leaseClient: leaseClient}, nil
}

// Acquire takes the infinite lease and returns a release function. A second
// caller fails while the lease is held. The release function never fails the
// caller; release errors are only logged.
func (l *LeaseLock) Acquire(ctx context.Context) (func(), error) {
	// The lock blob must exist before it can be leased. If-None-Match: *
	// keeps concurrent creators from clobbering a leased blob.
	_, err := l.store.client.UploadBuffer(ctx, locksContainer, lockBlob, []byte("lock"), &azblob.UploadBufferOptions{
		AccessConditions: &blob.AccessConditions{
			ModifiedAccessConditions: &blob.ModifiedAccessConditions{
				IfNoneMatch: to.Ptr(azcore.ETagAny),
			},
		},
	})
	if err != nil && !bloberror.HasCode(err, bloberror.BlobAlreadyExists, bloberror.LeaseIDMissing) {
		return nil, fmt.Errorf("creating lock blob: %w", err)
	}

	if _, err := l.leaseClient.AcquireLease(ctx, -1, nil); err != nil {
		return nil, fmt.Errorf("acquiring lease: %w", err)
	}

	return func() {
		if _, err := l.leaseClient.ReleaseLease(context.Background(), nil); err != nil {
			log.Error().Err(err).Msg("could not release expiration lock lease")
		}
	}, nil
}
