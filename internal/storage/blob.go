// Package storage holds the Azure Storage backed stores: the events blob
// document, the event cover image container, the invitations table and the
// lease-based scheduler lock.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/oviedojeepclub/clubhub/internal/event"
)

const (
	eventsContainer = "events"
	eventsBlob      = "events.json"
	imagesContainer = "event-images"
)

// BlobStore reads and writes the single events.json document plus event
// cover images. The document is always replaced wholesale; last writer wins.
type BlobStore struct {
	client *azblob.Client
}

func NewBlobStore(connectionString string) (*BlobStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("creating blob client: %w", err)
	}
	return &BlobStore{client: client}, nil
}

// EnsureContainers creates the containers the app writes to, tolerating ones
// that already exist.
func (s *BlobStore) EnsureContainers(ctx context.Context) error {
	for _, name := range []string{eventsContainer, imagesContainer, locksContainer} {
		if _, err := s.client.CreateContainer(ctx, name, nil); err != nil {
			if bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
				continue
			}
			return fmt.Errorf("creating container %s: %w", name, err)
		}
	}
	return nil
}

// Events downloads and decodes the full events list. A missing blob reads as
// an empty list.
func (s *BlobStore) Events(ctx context.Context) ([]event.Event, error) {
	res, err := s.client.DownloadStream(ctx, eventsContainer, eventsBlob, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("downloading events blob: %w", err)
	}
	defer res.Body.Close()

	contents, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading events blob: %w", err)
	}
	var events []event.Event
	if err := json.Unmarshal(contents, &events); err != nil {
		return nil, fmt.Errorf("decoding events blob: %w", err)
	}
	return events, nil
}

// SaveEvents validates and overwrites the whole events document.
func (s *BlobStore) SaveEvents(ctx context.Context, events []event.Event) error {
	if err := event.Validate(events); err != nil {
		return err
	}
	encoded, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}
	if _, err := s.client.UploadBuffer(ctx, eventsContainer, eventsBlob, encoded, nil); err != nil {
		return fmt.Errorf("uploading events blob: %w", err)
	}
	return nil
}

// UploadEventsFile stores a pre-validated events document under the given
// blob name in the events container.
func (s *BlobStore) UploadEventsFile(ctx context.Context, name string, contents []byte) error {
	if _, err := s.client.UploadBuffer(ctx, eventsContainer, name, contents, nil); err != nil {
		return fmt.Errorf("uploading %s: %w", name, err)
	}
	return nil
}

// SaveCoverImage uploads an event cover image and returns its blob URL.
func (s *BlobStore) SaveCoverImage(ctx context.Context, name string, contents io.Reader) (string, error) {
	blobClient := s.client.ServiceClient().NewContainerClient(imagesContainer).NewBlockBlobClient(name)
	if _, err := blobClient.UploadStream(ctx, contents, nil); err != nil {
		return "", fmt.Errorf("uploading cover image %s: %w", name, err)
	}
	return blobClient.URL(), nil
}
