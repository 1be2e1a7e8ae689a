package routes

import (
	"tailor-shop/controllers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine, cartCtrl *controllers.CartController, checkoutCtrl *controllers.CheckoutController) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.GET("/cart", cartCtrl.GetCart)
	router.DELETE("/cart", cartCtrl.ClearCart)
	router.POST("/cart/items", cartCtrl.AddItem)
	router.PATCH("/cart/items", cartCtrl.UpdateQuantity)
	router.DELETE("/cart/items/:productId", cartCtrl.RemoveItem)

	router.GET("/addresses", checkoutCtrl.ListAddresses)

	checkout := router.Group("/checkout")
	{
		checkout.POST("", checkoutCtrl.Start)
		checkout.GET("", checkoutCtrl.GetSession)
		checkout.DELETE("", checkoutCtrl.Dismiss)
		checkout.POST("/next", checkoutCtrl.Next)
		checkout.POST("/back", checkoutCtrl.Back)
		checkout.PUT("/address", checkoutCtrl.SelectAddress)
		checkout.GET("/shipping-options", checkoutCtrl.ShippingOptions)
		checkout.PUT("/shipping", checkoutCtrl.SelectShipping)
		checkout.PUT("/payment", checkoutCtrl.SelectPayment)
		checkout.GET("/review", checkoutCtrl.Review)
		checkout.POST("/submit", checkoutCtrl.Submit)
	}
}
