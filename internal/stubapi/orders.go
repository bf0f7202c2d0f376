package stubapi

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"artconsole/internal/domain/orders"
)

func (s *Server) listOrders(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	search := c.Query("search")
	status := c.Query("status")
	payment := c.Query("payment_status")

	var all []orders.Order
	for _, o := range s.store.orders {
		if status != "" && o.Status != status {
			continue
		}
		if payment != "" && o.PaymentStatus != payment {
			continue
		}
		if !matchesSearch(search, o.Number, o.CustomerName, o.CustomerEmail) {
			continue
		}
		all = append(all, *o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	c.JSON(http.StatusOK, paginate(c, all))
}

func (s *Server) orderByID(c *gin.Context) (*orders.Order, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		notFound(c, "order")
		return nil, false
	}
	o, ok := s.store.orders[uint(id)]
	if !ok {
		notFound(c, "order")
		return nil, false
	}
	return o, true
}

func (s *Server) getOrder(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	o, ok := s.orderByID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	o, ok := s.orderByID(c)
	if !ok {
		return
	}
	o.Status = input.Status
	o.UpdatedAt = time.Now()
	c.JSON(http.StatusOK, o)
}

func (s *Server) updateOrderPaymentStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	o, ok := s.orderByID(c)
	if !ok {
		return
	}
	o.PaymentStatus = input.Status
	o.UpdatedAt = time.Now()
	c.JSON(http.StatusOK, o)
}

func (s *Server) deleteOrder(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	o, ok := s.orderByID(c)
	if !ok {
		return
	}
	delete(s.store.orders, o.ID)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
