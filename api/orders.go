package api

import (
	"net/http"

	"github.com/example/snackmarket/pkg/market"
	"github.com/example/snackmarket/pkg/models"
	"github.com/gin-gonic/gin"
)

type orderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type createOrderRequest struct {
	ContactNumber string             `json:"contact_number"`
	Hostel        string             `json:"hostel"`
	RoomNumber    string             `json:"room_number"`
	PaymentMethod string             `json:"payment_method"`
	Items         []orderLineRequest `json:"items"`
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := market.PlaceOrderInput{
		ContactNumber: req.ContactNumber,
		Hostel:        req.Hostel,
		RoomNumber:    req.RoomNumber,
		PaymentMethod: req.PaymentMethod,
	}
	for _, item := range req.Items {
		in.Lines = append(in.Lines, market.OrderLineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := s.market.PlaceOrder(c.Request.Context(), identityFrom(c), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed successfully",
		"order":   order,
	})
}

// listOrders serves all three views over the same storage. The query flags
// mirror the web client: ?admin=true, ?seller=true, default buyer history.
// Requesting the seller view marks that seller's notifications read.
func (s *Server) listOrders(c *gin.Context) {
	actor := identityFrom(c)
	ctx := c.Request.Context()

	var (
		orders []models.Order
		err    error
	)
	switch {
	case c.Query("admin") == "true":
		orders, err = s.market.OrdersForAdmin(ctx, actor)
	case c.Query("seller") == "true":
		orders, err = s.market.OrdersForSeller(ctx, actor)
	default:
		orders, err = s.market.OrdersForBuyer(ctx, actor)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, orders)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := s.market.TransitionStatus(c.Request.Context(), identityFrom(c), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (s *Server) unreadNotifications(c *gin.Context) {
	count, err := s.market.UnreadCount(c.Request.Context(), identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

func (s *Server) orderAudit(c *gin.Context) {
	events, err := s.market.OrderAudit(c.Request.Context(), identityFrom(c), c.Param("id"), 100)
	if err != nil {
		writeError(c, err)
		return
	}
	if events == nil {
		events = []market.AuditEvent{}
	}

	c.JSON(http.StatusOK, events)
}
