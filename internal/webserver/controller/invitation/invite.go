package invitation

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oviedojeepclub/clubhub/internal/emailer"
	"github.com/oviedojeepclub/clubhub/internal/model"
	"github.com/rs/zerolog/log"
)

// Invite creates a family invitation tied to the inviting member's
// membership and emails the acceptance link. The email goes out in the
// background so a slow mail provider does not hold up the response.
func (i *Controller) Invite(c *fiber.Ctx) error {
	session, ok := c.Locals("Session").(model.Session)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var body struct {
		FamilyName  string `json:"family_name" form:"family_name"`
		FamilyEmail string `json:"family_email" form:"family_email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing family name or email",
		})
	}
	body.FamilyName = strings.TrimSpace(body.FamilyName)
	body.FamilyEmail = strings.TrimSpace(body.FamilyEmail)
	if body.FamilyName == "" || body.FamilyEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing family name or email",
		})
	}

	invitation := model.Invitation{
		Token:            strings.ReplaceAll(uuid.NewString(), "-", ""),
		FamilyEmail:      body.FamilyEmail,
		FamilyName:       body.FamilyName,
		MembershipNumber: session.MembershipNumber,
		MemberJoined:     session.MemberJoined,
		MemberExpiration: session.MemberExpiration,
		CreatedAt:        time.Now().UTC(),
	}

	if err := i.invitations.Store(c.Context(), invitation); err != nil {
		log.Error().Err(err).Msg("cannot store invitation")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create the invitation",
		})
	}

	link := fmt.Sprintf("%s/accept_invitation?token=%s", c.Locals("fqdn").(string), invitation.Token)
	msg, err := emailer.FamilyInvitation(invitation.FamilyName, link)
	if err != nil {
		log.Error().Err(err).Msg("cannot compose invitation email")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not send the invitation",
		})
	}

	go func() {
		if err := i.sender.Send(invitation.FamilyEmail, invitation.FamilyName, msg); err != nil {
			log.Error().Err(err).Str("to", invitation.FamilyEmail).Msg("cannot send invitation email")
		}
	}()

	return c.JSON(fiber.Map{
		"message": "Invitation sent successfully!",
	})
}
