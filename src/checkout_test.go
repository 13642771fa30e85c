package main

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/plutov/paypal/v4"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func orderRows(status string, bookingID any) *sqlmock.Rows {
	cols := []string{"id", "provider_order_id", "user_id", "event_id", "quantity", "unit_price", "total", "status", "booking_id"}
	return sqlmock.NewRows(cols).AddRow(3, "TESTORDER1", 1, 5, 2, 10.0, 20.0, status, bookingID)
}

func (s *TestSuite) TestCreateCheckoutOrder() {
	router := s.newRouter()

	s.Run("Should reject an incomplete body", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/checkout", strings.NewReader(`{"amount":10}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should create a provider order and a local record", func() {
		s.Mock.ExpectBegin()
		s.Mock.ExpectQuery(`INSERT INTO "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		s.Mock.ExpectCommit()

		w := httptest.NewRecorder()
		body := `{"amount":10,"quantity":3,"eventName":"Test Concert","eventId":5,"userId":999}`
		req, _ := http.NewRequest("POST", "/api/checkout", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "http://localhost:3000")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		res := w.Body.String()
		assert.Equal(s.T(), "TESTORDER1", gjson.Get(res, "id").String())
		assert.Contains(s.T(), gjson.Get(res, "approvalUrl").String(), "checkoutnow")

		assert.Len(s.T(), s.Pay.CreatedUnits, 1)
		unit := s.Pay.CreatedUnits[0]
		assert.Equal(s.T(), "30.00", unit.Amount.Value)
		assert.Equal(s.T(), "5", unit.ReferenceID)
		assert.Equal(s.T(), "Event Ticket - Test Concert", unit.Description)
		// The purchaser comes from the token, not from the request body.
		assert.Contains(s.T(), unit.CustomID, `"userId":"1"`)
	})
}

func (s *TestSuite) TestCaptureOrder() {
	router := s.newRouter()

	s.Run("Should require an order id", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/checkout/capture", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		assert.Equal(s.T(), "Order ID is required", gjson.Get(w.Body.String(), "error").String())
	})

	s.Run("Should return 404 for an unknown order", func() {
		s.Mock.ExpectQuery(`SELECT \* FROM "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/checkout/capture", strings.NewReader(`{"orderId":"UNKNOWN1"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 404, w.Code)
		assert.Equal(s.T(), "Order not found", gjson.Get(w.Body.String(), "error").String())
	})

	s.Run("Should not write anything when the payment is not completed", func() {
		s.Mock.ExpectQuery(`SELECT \* FROM "orders"`).
			WillReturnRows(orderRows("pending", nil))
		s.Pay.CaptureOrderFn = func(orderID string) (*paypal.CaptureOrderResponse, error) {
			return &paypal.CaptureOrderResponse{ID: orderID, Status: "PENDING"}, nil
		}

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/checkout/capture", strings.NewReader(`{"orderId":"TESTORDER1"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		res := w.Body.String()
		assert.Equal(s.T(), "Payment not completed", gjson.Get(res, "error").String())
		assert.Equal(s.T(), "PENDING", gjson.Get(res, "status").String())
	})
}

func (s *TestSuite) TestCaptureOrderConfirmsBooking() {
	router := s.newRouter()

	s.Mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows("pending", nil))
	s.Mock.ExpectBegin()
	s.Mock.ExpectQuery(`SELECT \* FROM "orders" WHERE .+FOR UPDATE`).
		WillReturnRows(orderRows("pending", nil))
	s.Mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	s.Mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	s.Mock.ExpectExec(`UPDATE "events" SET "booked_seats"=booked_seats \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.Mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.Mock.ExpectCommit()

	s.Pay.CaptureOrderFn = func(orderID string) (*paypal.CaptureOrderResponse, error) {
		return &paypal.CaptureOrderResponse{
			ID:     orderID,
			Status: "COMPLETED",
			PurchaseUnits: []paypal.CapturedPurchaseUnit{
				{
					Payments: &paypal.CapturedPayments{
						Captures: []paypal.CaptureAmount{
							{Amount: &paypal.PurchaseUnitAmount{Currency: "USD", Value: "20.00"}},
						},
					},
				},
			},
		}, nil
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/checkout/capture", strings.NewReader(`{"orderId":"TESTORDER1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
	res := w.Body.String()
	assert.True(s.T(), gjson.Get(res, "success").Bool())
	assert.Equal(s.T(), "COMPLETED", gjson.Get(res, "status").String())
	assert.Equal(s.T(), int64(2), gjson.Get(res, "booking.numberOfSeats").Int())
	assert.Equal(s.T(), 20.0, gjson.Get(res, "booking.totalPrice").Float())
	assert.Equal(s.T(), "paid", gjson.Get(res, "booking.paymentStatus").String())
	assert.False(s.T(), gjson.Get(res, "message").Exists())
}

func (s *TestSuite) TestCaptureOrderSoldOut() {
	router := s.newRouter()

	s.Mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows("pending", nil))
	s.Mock.ExpectBegin()
	s.Mock.ExpectQuery(`SELECT \* FROM "orders" WHERE .+FOR UPDATE`).
		WillReturnRows(orderRows("pending", nil))
	s.Mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	s.Mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	s.Mock.ExpectExec(`UPDATE "events" SET "booked_seats"=booked_seats \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.Mock.ExpectRollback()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/checkout/capture", strings.NewReader(`{"orderId":"TESTORDER1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 500, w.Code)
	assert.Contains(s.T(), gjson.Get(w.Body.String(), "details").String(), "not enough seats")
}

func (s *TestSuite) TestCapturePendingOrderWithPaidBooking() {
	router := s.newRouter()

	s.Mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows("pending", nil))
	s.Mock.ExpectBegin()
	s.Mock.ExpectQuery(`SELECT \* FROM "orders" WHERE .+FOR UPDATE`).
		WillReturnRows(orderRows("pending", nil))
	s.Mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "number_of_seats", "total_price", "payment_status", "status"}).
			AddRow(7, 5, 1, 2, 20.0, "paid", "confirmed"))
	// The order row is settled even though no new booking is written.
	s.Mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.Mock.ExpectCommit()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/checkout/capture", strings.NewReader(`{"orderId":"TESTORDER1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
	res := w.Body.String()
	assert.Equal(s.T(), "Booking already confirmed", gjson.Get(res, "message").String())
	assert.Equal(s.T(), int64(7), gjson.Get(res, "booking.id").Int())
}

func (s *TestSuite) TestCaptureOrderIdempotent() {
	router := s.newRouter()

	s.Mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows("captured", 7))
	s.Mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "number_of_seats", "total_price", "payment_status", "status"}).
			AddRow(7, 5, 1, 2, 20.0, "paid", "confirmed"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/checkout/capture", strings.NewReader(`{"orderId":"TESTORDER1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
	res := w.Body.String()
	assert.Equal(s.T(), "Booking already confirmed", gjson.Get(res, "message").String())
	assert.Equal(s.T(), int64(7), gjson.Get(res, "booking.id").Int())
	// The provider is never asked to capture twice.
	assert.Empty(s.T(), s.Pay.CapturedID)
}
