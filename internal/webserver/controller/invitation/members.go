package invitation

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oviedojeepclub/clubhub/internal/model"
	"github.com/rs/zerolog/log"
)

// FamilyMembers lists every account sharing the caller's membership number.
func (i *Controller) FamilyMembers(c *fiber.Ctx) error {
	session, ok := c.Locals("Session").(model.Session)
	if !ok {
		return fiber.ErrUnauthorized
	}

	members, err := i.directory.FamilyMembers(c.Context(), session.MembershipNumber)
	if err != nil {
		log.Error().Err(err).Msg("cannot list family members")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list family members",
		})
	}

	type familyMember struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		JobTitle string `json:"job_title"`
	}

	out := make([]familyMember, 0, len(members))
	for _, member := range members {
		out = append(out, familyMember{
			Name:     member.DisplayName,
			Email:    member.Email(),
			JobTitle: member.JobTitle,
		})
	}

	return c.JSON(out)
}
