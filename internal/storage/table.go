package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/oviedojeepclub/clubhub/internal/model"
)

const invitationsTable = "Invitations"

// InvitationTable stores family invitations as table entities keyed by their
// token on both partition and row key.
type InvitationTable struct {
	client *aztables.Client
}

func NewInvitationTable(connectionString string) (*InvitationTable, error) {
	service, err := aztables.NewServiceClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("creating table client: %w", err)
	}
	return &InvitationTable{client: service.NewClient(invitationsTable)}, nil
}

// EnsureTable creates the invitations table, tolerating one that exists.
func (t *InvitationTable) EnsureTable(ctx context.Context) error {
	if _, err := t.client.CreateTable(ctx, nil); err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusConflict {
			return nil
		}
		return fmt.Errorf("creating invitations table: %w", err)
	}
	return nil
}

// Store upserts the invitation entity, replacing any previous one under the
// same token.
func (t *InvitationTable) Store(ctx context.Context, invitation model.Invitation) error {
	entity := aztables.EDMEntity{
		Entity: aztables.Entity{
			PartitionKey: invitation.Token,
			RowKey:       invitation.Token,
		},
		Properties: map[string]any{
			"FamilyEmail":          invitation.FamilyEmail,
			"FamilyName":           invitation.FamilyName,
			"MembershipNumber":     invitation.MembershipNumber,
			"MemberJoinedDate":     invitation.MemberJoined,
			"MemberExpirationDate": invitation.MemberExpiration,
			"CreatedAt":            invitation.CreatedAt.UTC().Format(time.RFC3339),
		},
	}

	encoded, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encoding invitation entity: %w", err)
	}
	if _, err := t.client.UpsertEntity(ctx, encoded, &aztables.UpsertEntityOptions{UpdateMode: aztables.UpdateModeReplace}); err != nil {
		return fmt.Errorf("storing invitation: %w", err)
	}
	return nil
}

// Get fetches an invitation by token. A missing token returns nil, nil.
func (t *InvitationTable) Get(ctx context.Context, token string) (*model.Invitation, error) {
	res, err := t.client.GetEntity(ctx, token, token, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("retrieving invitation: %w", err)
	}

	var entity aztables.EDMEntity
	if err := json.Unmarshal(res.Value, &entity); err != nil {
		return nil, fmt.Errorf("decoding invitation entity: %w", err)
	}

	invitation := &model.Invitation{
		Token:            entity.RowKey,
		FamilyEmail:      asString(entity.Properties["FamilyEmail"]),
		FamilyName:       asString(entity.Properties["FamilyName"]),
		MembershipNumber: asString(entity.Properties["MembershipNumber"]),
		MemberJoined:     asInt64(entity.Properties["MemberJoinedDate"]),
		MemberExpiration: asInt64(entity.Properties["MemberExpirationDate"]),
	}
	if created, err := time.Parse(time.RFC3339, asString(entity.Properties["CreatedAt"])); err == nil {
		invitation.CreatedAt = created
	}
	return invitation, nil
}

// Delete removes an accepted invitation. A missing entity is not an error.
func (t *InvitationTable) Delete(ctx context.Context, token string) error {
	if _, err := t.client.DeleteEntity(ctx, token, token, nil); err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("deleting invitation: %w", err)
	}
	return nil
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

func asInt64(value any) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		parsed, _ := strconv.ParseInt(v, 10, 64)
		return parsed
	default:
		return 0
	}
}
