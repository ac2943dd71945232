package invitation

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oviedojeepclub/clubhub/internal/directory"
	"github.com/oviedojeepclub/clubhub/internal/webserver/flash"
	"github.com/rs/zerolog/log"
)

// Accept shows the acceptance form on GET and provisions the family member
// account on POST. The family account inherits the inviter's membership
// number and dates, so the whole family expires together.
func (i *Controller) Accept(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		token = c.FormValue("token")
	}

	invitation, err := i.invitations.Get(c.Context(), token)
	if err != nil {
		log.Error().Err(err).Msg("cannot look up invitation")
	}
	if invitation == nil || invitation.Expired(i.config.Timeout, time.Now().UTC()) {
		flash.Set(c, "danger", "Invalid or expired invitation token.")
		return c.Redirect("/")
	}

	if c.Method() == fiber.MethodPost {
		password := c.FormValue("password")
		if password == "" {
			return c.Render("accept_invitation", fiber.Map{
				"Title":      "Accept invitation",
				"Token":      token,
				"FamilyName": invitation.FamilyName,
				"Error":      "Password is required.",
			}, "layout")
		}

		details := directory.MembershipDetails{
			Number:     invitation.MembershipNumber,
			Joined:     invitation.MemberJoined,
			Expiration: invitation.MemberExpiration,
		}
		if _, err := i.directory.CreateMember(c.Context(), invitation.FamilyEmail, invitation.FamilyName, password, details); err != nil {
			log.Error().Err(err).Msg("cannot create family member account")
			return c.Render("accept_invitation", fiber.Map{
				"Title":      "Accept invitation",
				"Token":      token,
				"FamilyName": invitation.FamilyName,
				"Error":      "Could not create the account. The invitation may already have been used.",
			}, "layout")
		}

		if err := i.invitations.Delete(c.Context(), token); err != nil {
			log.Error().Err(err).Str("token", token).Msg("cannot delete used invitation")
		}

		flash.Set(c, "success", "Family member account created. Please sign in.")
		return c.Redirect("/login")
	}

	return c.Render("accept_invitation", fiber.Map{
		"Title":      "Accept invitation",
		"Token":      token,
		"FamilyName": invitation.FamilyName,
	}, "layout")
}

// AcceptProbe answers the HEAD requests that mail scanners fire at
// invitation links without burning the token.
func (i *Controller) AcceptProbe(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}
