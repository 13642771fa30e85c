package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"evbook/src/lib"
	"evbook/src/models"
	"evbook/src/types"
	"evbook/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/plutov/paypal/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentsClient re-checks configuration at request time so a server started
// before credentials were set can still pick them up.
func (a *App) paymentsClient() (lib.Payments, error) {
	if a.payments != nil {
		return a.payments, nil
	}
	p, err := lib.NewPayPalClient(a.cfg)
	if err != nil {
		return nil, err
	}
	a.payments = p
	return p, nil
}

func (a *App) checkoutHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("", func(ctx *gin.Context) {
			client, err := a.paymentsClient()
			if err != nil {
				log.Printf("PayPal configuration error: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			var body types.CreateOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
				return
			}
			// The purchaser is whoever the verified token says it is; the
			// request body has no say in the matter.
			userId := ctx.GetUint("id")
			total := utils.FormatTotal(body.Amount, body.Quantity)

			customPayload, _ := json.Marshal(map[string]string{
				"userId":   strconv.FormatUint(uint64(userId), 10),
				"eventId":  strconv.FormatUint(uint64(body.EventID), 10),
				"quantity": strconv.Itoa(body.Quantity),
			})
			origin := ctx.GetHeader("Origin")
			if origin == "" {
				origin = a.cfg.AppHost
			}

			order, err := client.CreateOrder(ctx, paypal.OrderIntentCapture,
				[]paypal.PurchaseUnitRequest{
					{
						ReferenceID: strconv.FormatUint(uint64(body.EventID), 10),
						Description: fmt.Sprintf("Event Ticket - %s", body.EventName),
						Amount: &paypal.PurchaseUnitAmount{
							Currency: "USD",
							Value:    total,
						},
						CustomID: string(customPayload),
					},
				},
				nil,
				&paypal.ApplicationContext{
					BrandName:   "Event Booking System",
					LandingPage: "BILLING",
					UserAction:  paypal.UserActionPayNow,
					ReturnURL:   fmt.Sprintf("%s/success", origin),
					CancelURL:   fmt.Sprintf("%s/cancel", origin),
				},
			)
			if err != nil {
				log.Printf("PayPal order creation error: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create PayPal order", "details": err.Error()})
				return
			}
			approvalURL := lib.ApprovalURL(order)
			if approvalURL == "" {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create PayPal order"})
				return
			}

			totalAmount, _ := strconv.ParseFloat(total, 64)
			record := models.Order{
				ProviderOrderID: order.ID,
				UserID:          userId,
				EventID:         body.EventID,
				Quantity:        uint(body.Quantity),
				UnitPrice:       body.Amount,
				Total:           totalAmount,
				Status:          types.ORDER_PENDING,
			}
			if err := a.db.Create(&record).Error; err != nil {
				log.Printf("Error recording order %s: %s\n", order.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create PayPal order"})
				return
			}

			ctx.JSON(http.StatusOK, gin.H{"id": order.ID, "approvalUrl": approvalURL})
		}).
		POST("/capture", func(ctx *gin.Context) {
			client, err := a.paymentsClient()
			if err != nil {
				log.Printf("PayPal configuration error: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			var body types.CaptureOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Order ID is required"})
				return
			}

			var order models.Order
			if err := a.db.
				Model(&models.Order{}).
				Where(&models.Order{ProviderOrderID: body.OrderID}).
				First(&order).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to capture payment"})
				return
			}
			if order.Status == types.ORDER_CAPTURED && order.BookingID != nil {
				var booking models.Booking
				if err := a.db.First(&booking, *order.BookingID).Error; err == nil {
					ctx.JSON(http.StatusOK, gin.H{
						"success": true,
						"orderId": body.OrderID,
						"status":  "COMPLETED",
						"booking": booking,
						"message": "Booking already confirmed",
					})
					return
				}
			}

			capture, err := client.CaptureOrder(ctx, body.OrderID, paypal.CaptureOrderRequest{})
			if err != nil {
				log.Printf("PayPal capture error: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to capture payment", "details": err.Error()})
				return
			}
			if capture.Status != "COMPLETED" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Payment not completed", "status": capture.Status})
				return
			}

			capturedTotal := order.Total
			if amt := capturedAmount(capture); amt > 0 {
				capturedTotal = amt
			}

			booking, alreadyConfirmed, err := a.confirmBooking(&order, capturedTotal)
			if err != nil {
				log.Printf("Error materializing booking for order %s: %s\n", body.OrderID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to capture payment", "details": err.Error()})
				return
			}

			resp := gin.H{
				"success": true,
				"orderId": capture.ID,
				"status":  capture.Status,
				"booking": booking,
			}
			if alreadyConfirmed {
				resp["message"] = "Booking already confirmed"
			} else {
				go a.sendBookingConfirmation(booking)
			}
			ctx.JSON(http.StatusOK, resp)
		})
	return g
}

// capturedAmount digs the settled value out of the capture response.
func capturedAmount(capture *paypal.CaptureOrderResponse) float64 {
	for _, pu := range capture.PurchaseUnits {
		if pu.Payments == nil {
			continue
		}
		for _, c := range pu.Payments.Captures {
			if c.Amount == nil {
				continue
			}
			if v, err := strconv.ParseFloat(c.Amount.Value, 64); err == nil {
				return v
			}
		}
	}
	return 0
}

// confirmBooking runs the post-capture writes in one transaction: the
// idempotency check, the booking insert, the bounded seat increment and the
// order state flip either all land or none do.
func (a *App) confirmBooking(order *models.Order, capturedTotal float64) (*models.Booking, bool, error) {
	var booking models.Booking
	alreadyConfirmed := false
	err := a.db.Transaction(func(tx *gorm.DB) error {
		var locked models.Order
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Order{ID: order.ID}).
			First(&locked).
			Error; err != nil {
			return err
		}
		if locked.Status == types.ORDER_CAPTURED && locked.BookingID != nil {
			alreadyConfirmed = true
			return tx.First(&booking, *locked.BookingID).Error
		}

		// A paid booking for the same (event, user) pair means this capture
		// already went through by another path.
		var existing models.Booking
		err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{EventID: locked.EventID, UserID: locked.UserID, PaymentStatus: types.PAYMENT_PAID}).
			Order("created_at DESC").
			First(&existing).
			Error
		if err == nil {
			alreadyConfirmed = true
			booking = existing
			// The provider has taken payment, so the order must not stay
			// pending or the expiry sweep will misreport it.
			return tx.
				Model(&models.Order{}).
				Where(&models.Order{ID: locked.ID}).
				Updates(map[string]any{"status": types.ORDER_CAPTURED, "booking_id": existing.ID}).
				Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		booking = models.Booking{
			EventID:       locked.EventID,
			UserID:        locked.UserID,
			NumberOfSeats: locked.Quantity,
			TotalPrice:    capturedTotal,
			PaymentStatus: types.PAYMENT_PAID,
			Status:        types.BOOKING_CONFIRMED,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		res := tx.
			Model(&models.Event{}).
			Where("id = ? AND booked_seats + ? <= available_seats", locked.EventID, locked.Quantity).
			UpdateColumn("booked_seats", gorm.Expr("booked_seats + ?", locked.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("not enough seats available")
		}

		return tx.
			Model(&models.Order{}).
			Where(&models.Order{ID: locked.ID}).
			Updates(map[string]any{"status": types.ORDER_CAPTURED, "booking_id": booking.ID}).
			Error
	})
	if err != nil {
		return nil, false, err
	}
	return &booking, alreadyConfirmed, nil
}

func (a *App) sendBookingConfirmation(booking *models.Booking) {
	if a.cfg.SMTPHost == "" {
		return
	}
	var user models.User
	if err := a.db.First(&user, booking.UserID).Error; err != nil {
		log.Printf("Could not load user %d for confirmation mail: %s\n", booking.UserID, err.Error())
		return
	}
	var event models.Event
	if err := a.db.First(&event, booking.EventID).Error; err != nil {
		log.Printf("Could not load event %d for confirmation mail: %s\n", booking.EventID, err.Error())
		return
	}
	body := fmt.Sprintf("Your booking for %s is confirmed: %d seat(s), total %.2f USD.",
		event.Title, booking.NumberOfSeats, booking.TotalPrice)
	err := lib.SendMail(a.cfg, &lib.SendMailInput{
		From:    a.cfg.MailFrom,
		To:      []string{user.Email},
		Subject: fmt.Sprintf("Booking confirmed: %s", event.Title),
		Body:    body,
	})
	if err != nil {
		log.Printf("Error sending confirmation mail for booking %d: %s\n", booking.ID, err.Error())
	}
}
