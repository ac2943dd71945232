package home

type Controller struct{}

func NewController() *Controller {
	return &Controller{}
}
