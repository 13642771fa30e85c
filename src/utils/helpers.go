package utils

import (
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"path"
	"strconv"
	"strings"
	"time"

	"evbook/src/config"
	"evbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

func GenerateJWT(id uint, username, email string, jwtKey []byte) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(types.TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// TotalPages computes the page count the list endpoints report.
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// FormatTotal renders amount*quantity with fixed two-decimal formatting, the
// exact string sent to the payment provider.
func FormatTotal(amount float64, quantity int) string {
	return fmt.Sprintf("%.2f", amount*float64(quantity))
}

// CombineDateTime merges a calendar date (2006-01-02) and an optional
// time-of-day (15:04) into one timestamp.
func CombineDateTime(date, timeOfDay string) (time.Time, error) {
	if timeOfDay != "" {
		return time.Parse(config.DATETIME_PARSE_FORMAT, fmt.Sprintf("%sT%s", date, timeOfDay))
	}
	return time.Parse(config.DATE_PARSE_FORMAT, date)
}

func EventSlug(title string) string {
	return slug.Make(title)
}

// BindingErrors splits a validator error into missing required fields and
// fields that failed some other rule.
func BindingErrors(err error) (missing []string, invalid []string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, nil
	}
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		if fe.Tag() == "required" {
			missing = append(missing, name)
		} else {
			invalid = append(invalid, name)
		}
	}
	return missing, invalid
}

var allowedImageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
}

// SaveUploadedImage persists an uploaded image under dir and returns the URL
// path it will be served from.
func SaveUploadedImage(ctx *gin.Context, file *multipart.FileHeader, dir string) (string, error) {
	ext := strings.ToLower(path.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", errors.New("Only image files are allowed!")
	}
	filename := fmt.Sprintf("file-%s%s", uuid.NewString(), ext)
	if err := ctx.SaveUploadedFile(file, path.Join(dir, filename)); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s", filename), nil
}
