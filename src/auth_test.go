package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"evbook/src/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password", "role", "profile_picture", "balance"})
}

func (s *TestSuite) TestRegister() {
	router := s.newRouter()

	s.Run("Should reject an incomplete body", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/auth/register", strings.NewReader(`{"username":"alice"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		assert.False(s.T(), gjson.Get(w.Body.String(), "success").Bool())
	})

	s.Run("Should report a duplicate account without failing", func() {
		s.Mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(userRows().AddRow(1, "alice", "alice@example.com", "x", "user", "", 0))

		w := httptest.NewRecorder()
		body := `{"username":"alice","email":"alice@example.com","password":"hunter22"}`
		req, _ := http.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		res := w.Body.String()
		assert.False(s.T(), gjson.Get(res, "success").Bool())
		assert.Contains(s.T(), gjson.Get(res, "message").String(), "already an account")
	})

	s.Run("Should create an account", func() {
		s.Mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows())
		s.Mock.ExpectBegin()
		s.Mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		s.Mock.ExpectCommit()

		w := httptest.NewRecorder()
		body := `{"username":"alice","email":"alice@example.com","password":"hunter22"}`
		req, _ := http.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		res := w.Body.String()
		assert.True(s.T(), gjson.Get(res, "success").Bool())
		assert.Equal(s.T(), "Account created successfully!", gjson.Get(res, "message").String())
	})
}

func (s *TestSuite) TestLogin() {
	router := s.newRouter()

	s.Run("Should reject an unknown identifier with a generic message", func() {
		s.Mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows())

		w := httptest.NewRecorder()
		body := `{"email":"nobody@example.com","password":"hunter22"}`
		req, _ := http.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 401, w.Code)
		assert.Equal(s.T(), "Invalid credentials", gjson.Get(w.Body.String(), "message").String())
	})

	s.Run("Should reject a wrong password with the same message", func() {
		hashed, err := utils.HashPassword("correct-password")
		assert.Nil(s.T(), err)
		s.Mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(userRows().AddRow(1, "alice", "alice@example.com", hashed, "user", "", 0))

		w := httptest.NewRecorder()
		body := `{"email":"alice@example.com","password":"wrong-password"}`
		req, _ := http.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 401, w.Code)
		assert.Equal(s.T(), "Invalid credentials", gjson.Get(w.Body.String(), "message").String())
	})

	s.Run("Should return a token and the public profile", func() {
		hashed, err := utils.HashPassword("correct-password")
		assert.Nil(s.T(), err)
		s.Mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(userRows().AddRow(1, "alice", "alice@example.com", hashed, "user", "", 0))

		w := httptest.NewRecorder()
		body := `{"email":"alice","password":"correct-password"}`
		req, _ := http.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		res := w.Body.String()
		assert.True(s.T(), gjson.Get(res, "success").Bool())
		assert.NotEmpty(s.T(), gjson.Get(res, "token").String())
		assert.Equal(s.T(), "alice", gjson.Get(res, "user.username").String())
		assert.False(s.T(), gjson.Get(res, "user.password").Exists())
	})
}

func (s *TestSuite) TestMe() {
	router := s.newRouter()

	s.Run("Should read the profile from the database when no cache is configured", func() {
		s.Mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(userRows().AddRow(1, "tester", "tester@example.com", "x", "user", "", 0))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", "anything"))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), "tester", gjson.Get(w.Body.String(), "user.username").String())
	})

	s.Run("Should fall back to the database when the cache is unreachable", func() {
		s.App.rdb = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		defer func() { s.App.rdb = nil }()

		s.Mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(userRows().AddRow(1, "tester", "tester@example.com", "x", "user", "", 0))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", "anything"))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), "tester", gjson.Get(w.Body.String(), "user.username").String())
	})
}
