package api

import (
	"net/http"

	"github.com/example/snackmarket/pkg/market"
	"github.com/gin-gonic/gin"
)

type productRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
	ImageURL    string `json:"image_url"`
	Hostel      string `json:"hostel"`
}

func (r productRequest) input() market.ProductInput {
	return market.ProductInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		ImageURL:    r.ImageURL,
		Hostel:      r.Hostel,
	}
}

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.market.ListProducts(c.Request.Context(), market.ProductFilter{
		Hostel:   c.Query("hostel"),
		SellerID: c.Query("sellerId"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (s *Server) ownProducts(c *gin.Context) {
	products, err := s.market.OwnProducts(c.Request.Context(), identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (s *Server) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := s.market.CreateProduct(c.Request.Context(), identityFrom(c), req.input())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	var req productRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := s.market.UpdateProduct(c.Request.Context(), identityFrom(c), c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.market.DeleteProduct(c.Request.Context(), identityFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
