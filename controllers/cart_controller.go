package controllers

import (
	"net/http"

	"tailor-shop/models"
	"tailor-shop/repositories"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cart *repositories.CartRepository
}

func NewCartController(cart *repositories.CartRepository) *CartController {
	return &CartController{cart: cart}
}

// @Summary Get cart
// @Description Get cart contents with running totals
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart := ctrl.cart.Cart()

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: gin.H{
			"items":       cart.Items,
			"total_items": cart.TotalItems(),
			"total_price": cart.TotalPrice(),
		},
	})
}

// @Summary Add item to cart
// @Description Add an item; same product+variant merges into the existing line
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddItemRequest true "Item"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	ctrl.cart.AddItem(models.CartLineItem{
		ProductID:    req.ProductID,
		VariantID:    req.VariantID,
		Name:         req.Name,
		VariantLabel: req.VariantLabel,
		UnitPrice:    req.UnitPrice,
		Quantity:     req.Quantity,
		ImageURL:     req.ImageURL,
		MaxQuantity:  req.MaxQuantity,
	})

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Item added to cart",
		Data:    gin.H{"total_items": ctrl.cart.TotalItems()},
	})
}

// @Summary Update item quantity
// @Description Set a line's quantity, clamped to its stock ceiling
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.UpdateQuantityRequest true "Quantity"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	ctrl.cart.UpdateQuantity(req.ProductID, req.VariantID, req.Quantity)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Quantity updated",
		Data:    gin.H{"total_price": ctrl.cart.TotalPrice()},
	})
}

// @Summary Remove item from cart
// @Description Remove one line; no-op if the line is not present
// @Tags Cart
// @Produce json
// @Param productId path string true "Product ID"
// @Param variant_id query string false "Variant ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{productId} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	productID := c.Param("productId")

	var variantID *string
	if v := c.Query("variant_id"); v != "" {
		variantID = &v
	}

	ctrl.cart.RemoveItem(productID, variantID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item removed",
	})
}

// @Summary Clear cart
// @Description Empty the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	ctrl.cart.Clear()

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart cleared",
	})
}
