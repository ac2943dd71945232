package invitation

import (
	"github.com/gofiber/fiber/v2"
)

// DeleteData shows the data deletion request page. Deletion itself is
// handled by the board, so a POST only confirms the request was received.
func (i *Controller) DeleteData(c *fiber.Ctx) error {
	data := fiber.Map{
		"Title": "Data deletion request",
	}
	if c.Method() == fiber.MethodPost {
		data["Message"] = "Your request has been received. A board member will contact you shortly."
	}

	return c.Render("delete_data", data, "layout")
}
