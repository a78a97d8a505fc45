package api

import (
	"net/http"

	"github.com/example/snackmarket/pkg/market"
	"github.com/example/snackmarket/pkg/models"
	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	Name       string      `json:"name"`
	Role       models.Role `json:"role"`
	Hostel     string      `json:"hostel"`
	RoomNumber string      `json:"room_number"`
}

func (s *Server) profile(c *gin.Context) {
	user, err := s.market.Profile(c.Request.Context(), identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.market.UpdateProfile(c.Request.Context(), identityFrom(c), market.ProfileInput{
		Name:       req.Name,
		Role:       req.Role,
		Hostel:     req.Hostel,
		RoomNumber: req.RoomNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
