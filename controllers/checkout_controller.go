package controllers

import (
	"errors"
	"net/http"

	"tailor-shop/models"
	"tailor-shop/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkout  *services.CheckoutService
	addresses *services.AddressService
}

func NewCheckoutController(checkout *services.CheckoutService, addresses *services.AddressService) *CheckoutController {
	return &CheckoutController{
		checkout:  checkout,
		addresses: addresses,
	}
}

// @Summary Start checkout
// @Description Open a fresh checkout session at the address step
// @Tags Checkout
// @Produce json
// @Success 201 {object} models.Response
// @Router /checkout [post]
func (ctrl *CheckoutController) Start(c *gin.Context) {
	session := ctrl.checkout.Begin()

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Checkout started",
		Data:    session,
	})
}

// @Summary Get checkout state
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /checkout [get]
func (ctrl *CheckoutController) GetSession(c *gin.Context) {
	session, err := ctrl.checkout.Session()
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Data: session})
}

// @Summary Advance to the next step
// @Description Guarded from the address step: requires an address or pickup
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/next [post]
func (ctrl *CheckoutController) Next(c *gin.Context) {
	session, err := ctrl.checkout.Next()
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Data: session})
}

// @Summary Go back one step
// @Description From the address step this exits the wizard entirely
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Router /checkout/back [post]
func (ctrl *CheckoutController) Back(c *gin.Context) {
	session, exited, err := ctrl.checkout.Back()
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	if exited {
		c.JSON(http.StatusOK, models.Response{
			Success: true,
			Message: "Checkout dismissed",
			Data:    gin.H{"exited": true},
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Data: session})
}

// @Summary List saved addresses
// @Description Read-through cached for the duration of the checkout session
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Failure 502 {object} models.ErrorResponse
// @Router /addresses [get]
func (ctrl *CheckoutController) ListAddresses(c *gin.Context) {
	addresses, err := ctrl.addresses.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Message: "Failed to load addresses",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Data: addresses})
}

// @Summary Select shipping address
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.SelectAddressRequest true "Address"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /checkout/address [put]
func (ctrl *CheckoutController) SelectAddress(c *gin.Context) {
	var req models.SelectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	if err := ctrl.checkout.SelectAddress(c.Request.Context(), req.AddressID); err != nil {
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Address selected"})
}

// @Summary List shipping options
// @Description Fixed table of methods with cost and lead time
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Router /checkout/shipping-options [get]
func (ctrl *CheckoutController) ShippingOptions(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{Success: true, Data: models.ShippingOptions()})
}

// @Summary Select shipping method
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.SelectShippingRequest true "Method"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/shipping [put]
func (ctrl *CheckoutController) SelectShipping(c *gin.Context) {
	var req models.SelectShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	method, err := models.ParseShippingMethod(req.Method)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if err := ctrl.checkout.SelectShipping(method); err != nil {
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Shipping method selected"})
}

// @Summary Select payment method
// @Description Unsupported methods are selectable but rejected at submit
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.SelectPaymentRequest true "Method"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/payment [put]
func (ctrl *CheckoutController) SelectPayment(c *gin.Context) {
	var req models.SelectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	method, err := models.ParsePaymentMethod(req.Method)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if err := ctrl.checkout.SelectPayment(method); err != nil {
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Payment method selected"})
}

// @Summary Review order
// @Description Accumulated selections plus the price quote
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /checkout/review [get]
func (ctrl *CheckoutController) Review(c *gin.Context) {
	summary, err := ctrl.checkout.Review()
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Data: summary})
}

// @Summary Submit order
// @Description Issues exactly one order-creation call; cart and session survive any failure
// @Tags Checkout
// @Produce json
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /checkout/submit [post]
func (ctrl *CheckoutController) Submit(c *gin.Context) {
	confirmation, err := ctrl.checkout.Submit(c.Request.Context())
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Order placed",
		Data:    confirmation,
	})
}

// @Summary Dismiss checkout
// @Description Destroy the session; the cart is untouched
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Router /checkout [delete]
func (ctrl *CheckoutController) Dismiss(c *gin.Context) {
	ctrl.checkout.Dismiss()

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Checkout dismissed"})
}

func respondCheckoutError(c *gin.Context, err error) {
	var submitErr *services.SubmitError
	if errors.As(err, &submitErr) {
		status := http.StatusUnprocessableEntity
		if submitErr.Retryable {
			status = http.StatusBadGateway
		}
		c.JSON(status, models.ErrorResponse{
			Success: false,
			Message: submitErr.Message,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrNoCheckoutSession),
		errors.Is(err, services.ErrAddressNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, services.ErrSubmissionInFlight),
		errors.Is(err, services.ErrCheckoutCompleted):
		c.JSON(http.StatusConflict, models.ErrorResponse{Success: false, Message: err.Error()})
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: err.Error()})
	}
}
