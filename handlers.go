package main

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"checkflow/models"
	"checkflow/pkg/queue"
)

const maxCheckImageBytes = 5 * 1024 * 1024

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	// read by the notification worker, no auth
	r.GET("/customers/:id", getCustomerHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/payments/check", submitCheckHandler)
	authGroup.POST("/payments/card", submitCardHandler)
	authGroup.GET("/payments/:id", getPaymentHandler)
	authGroup.GET("/payments", listPaymentsHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": usernameVal.(string)})
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Register(req.Username, req.Password); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString})
}

// submitCheckHandler accepts a multipart form with customer_id and an image
// file, queues it for the check worker and records a Pending ledger row.
func submitCheckHandler(c *gin.Context) {
	customerID := c.PostForm("customer_id")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id required"})
		return
	}
	if !customerExists(customerID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file missing"})
		return
	}
	if file.Size > maxCheckImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large (max 5MB)"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}
	paymentID, err := producer.SubmitCheck(c.Request.Context(), customerID, image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue payment"})
		return
	}
	createPendingEntry(paymentID, customerID, queue.MethodCheck)
	c.JSON(http.StatusAccepted, gin.H{"payment_id": paymentID, "status": queue.StatusPending})
}

// submitCardHandler queues a card payment. Card processing itself lives in
// a worker; the API only validates shape and records the Pending row.
func submitCardHandler(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customer_id" binding:"required"`
		CardNumber string `json:"card_number" binding:"required"`
		ExpiryDate string `json:"expiry_date" binding:"required"`
		CVV        string `json:"cvv" binding:"required"`
		Amount     string `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive decimal"})
		return
	}
	if !customerExists(req.CustomerID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	paymentID, err := producer.SubmitCard(c.Request.Context(), req.CustomerID, req.CardNumber, req.ExpiryDate, req.CVV, amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue payment"})
		return
	}
	createPendingEntry(paymentID, req.CustomerID, queue.MethodCard)
	c.JSON(http.StatusAccepted, gin.H{"payment_id": paymentID, "status": queue.StatusPending})
}

func getPaymentHandler(c *gin.Context) {
	var entry models.LedgerEntry
	if err := db.Where("payment_id = ?", c.Param("id")).First(&entry).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// listPaymentsHandler returns recent payments, optionally filtered by
// customer_id.
func listPaymentsHandler(c *gin.Context) {
	q := db.Model(&models.LedgerEntry{})
	if cid := c.Query("customer_id"); cid != "" {
		q = q.Where("customer_id = ?", cid)
	}
	var entries []models.LedgerEntry
	if err := q.Order("id desc").Limit(200).Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func getCustomerHandler(c *gin.Context) {
	var customer models.Customer
	if err := db.Where("id = ?", c.Param("id")).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func customerExists(id string) bool {
	var customer models.Customer
	return db.Where("id = ?", id).First(&customer).Error == nil
}

// createPendingEntry writes the initial ledger row. The worker upserts the
// final state later, so a failure here is not fatal to the request: the
// payment is already queued.
func createPendingEntry(paymentID, customerID, method string) {
	entry := models.LedgerEntry{
		PaymentID:     paymentID,
		CustomerID:    customerID,
		Currency:      "USD",
		Status:        queue.StatusPending,
		PaymentMethod: method,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("failed to create pending ledger entry %s: %v", paymentID, err)
	}
}
