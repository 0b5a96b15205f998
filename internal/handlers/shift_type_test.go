package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shiftcal/shiftcal-api/internal/database"
	"github.com/shiftcal/shiftcal-api/internal/dto"
	apierrors "github.com/shiftcal/shiftcal-api/internal/errors"
	"github.com/shiftcal/shiftcal-api/internal/models"
	"github.com/shiftcal/shiftcal-api/internal/repository"
	"github.com/shiftcal/shiftcal-api/internal/services"
	"github.com/shiftcal/shiftcal-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ShiftTypeHandlerTestSuite defines the test suite for ShiftTypeHandler
type ShiftTypeHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ShiftTypeHandler
	service *services.ShiftTypeService
}

// SetupTest runs before each test
func (suite *ShiftTypeHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.ShiftTemplate{},
		&models.ShiftTemplateVersion{},
		&models.ShiftType{},
		&models.ShiftTypeSchedule{},
		&models.WorkShift{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	templateRepo := repository.NewShiftTemplateRepository(suite.db)
	shiftTypeRepo := repository.NewShiftTypeRepository(suite.db)
	workShiftRepo := repository.NewWorkShiftRepository(suite.db)
	suite.service = services.NewShiftTypeService(templateRepo, shiftTypeRepo, workShiftRepo)
	suite.handler = NewShiftTypeHandler(suite.service)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ShiftTypeHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *ShiftTypeHandlerTestSuite) createUserWithTemplate(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)

	template := &models.ShiftTemplate{UserID: user.ID, Name: "Test Template"}
	suite.db.Create(template)

	effectiveFrom, err := utils.ParseDate("2025-01-01")
	suite.Require().NoError(err)
	version := &models.ShiftTemplateVersion{
		ShiftTemplateID: template.ID,
		VersionNo:       1,
		EffectiveFrom:   effectiveFrom,
		CreatedBy:       user.ID,
	}
	suite.db.Create(version)

	return user
}

// Helper function to create authenticated context
func (suite *ShiftTypeHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

func (suite *ShiftTypeHandlerTestSuite) decodeAPIError(w *httptest.ResponseRecorder) apierrors.APIError {
	var apiErr apierrors.APIError
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

// TestCreateShiftType_Success tests registering a timed shift type
func (suite *ShiftTypeHandlerTestSuite) TestCreateShiftType_Success() {
	user := suite.createUserWithTemplate("alice")

	body, _ := json.Marshal(map[string]interface{}{
		"code":       "EARLY",
		"name":       "Early shift",
		"color":      0x2266FF,
		"start_time": "06:30",
		"end_time":   "15:00",
	})
	c, w := suite.createAuthContext("POST", "/api/shift-types", body, user.ID)

	suite.handler.CreateShiftType(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.ShiftTypeDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "EARLY", response.Code)
	assert.Equal(suite.T(), "Early shift", response.Name)
	assert.Equal(suite.T(), 1, response.SortOrder)
}

// TestCreateShiftType_IncompleteTimes tests a one-sided time range
func (suite *ShiftTypeHandlerTestSuite) TestCreateShiftType_IncompleteTimes() {
	user := suite.createUserWithTemplate("alice")

	body, _ := json.Marshal(map[string]interface{}{
		"code":       "EARLY",
		"name":       "Early shift",
		"start_time": "06:30",
	})
	c, w := suite.createAuthContext("POST", "/api/shift-types", body, user.ID)

	suite.handler.CreateShiftType(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateShiftType_CapacityExceeded tests the shift type cap response
func (suite *ShiftTypeHandlerTestSuite) TestCreateShiftType_CapacityExceeded() {
	user := suite.createUserWithTemplate("alice")

	codes := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	for _, code := range codes {
		_, err := suite.service.Create(user.ID, services.CreateShiftTypeInput{Code: code, Name: code})
		suite.Require().NoError(err)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"code": "K",
		"name": "K",
	})
	c, w := suite.createAuthContext("POST", "/api/shift-types", body, user.ID)

	suite.handler.CreateShiftType(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	apiErr := suite.decodeAPIError(w)
	assert.Equal(suite.T(), apierrors.ErrCodeMaxShiftTypesExceeded, apiErr.Code)
}

// TestCreateShiftType_DuplicateCode tests the code collision response
func (suite *ShiftTypeHandlerTestSuite) TestCreateShiftType_DuplicateCode() {
	user := suite.createUserWithTemplate("alice")

	_, err := suite.service.Create(user.ID, services.CreateShiftTypeInput{Code: "DAY", Name: "Day"})
	suite.Require().NoError(err)

	body, _ := json.Marshal(map[string]interface{}{
		"code": "DAY",
		"name": "Another day",
	})
	c, w := suite.createAuthContext("POST", "/api/shift-types", body, user.ID)

	suite.handler.CreateShiftType(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	apiErr := suite.decodeAPIError(w)
	assert.Equal(suite.T(), apierrors.ErrCodeDuplicateName, apiErr.Code)
}

// TestListShiftTypes_Success tests the registry listing
func (suite *ShiftTypeHandlerTestSuite) TestListShiftTypes_Success() {
	user := suite.createUserWithTemplate("alice")

	_, err := suite.service.Create(user.ID, services.CreateShiftTypeInput{Code: "DAY", Name: "Day"})
	suite.Require().NoError(err)
	_, err = suite.service.Create(user.ID, services.CreateShiftTypeInput{Code: "NIGHT", Name: "Night"})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("GET", "/api/shift-types", nil, user.ID)

	suite.handler.ListShiftTypes(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string][]dto.ShiftTypeDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response["shift_types"], 2)
	assert.Equal(suite.T(), "DAY", response["shift_types"][0].Code)
	assert.Equal(suite.T(), "NIGHT", response["shift_types"][1].Code)
}

// TestUpdateShiftType_Success tests the partial update path
func (suite *ShiftTypeHandlerTestSuite) TestUpdateShiftType_Success() {
	user := suite.createUserWithTemplate("alice")

	shiftType, err := suite.service.Create(user.ID, services.CreateShiftTypeInput{Code: "DAY", Name: "Day"})
	suite.Require().NoError(err)

	body, _ := json.Marshal(map[string]interface{}{
		"name": "Day shift",
	})
	c, w := suite.createAuthContext("PATCH", "/api/shift-types/1", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateShiftType(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ShiftTypeDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), shiftType.ID, response.ID)
	assert.Equal(suite.T(), "DAY", response.Code)
	assert.Equal(suite.T(), "Day shift", response.Name)
}

// TestUpdateShiftType_OtherUsersType tests the ownership response
func (suite *ShiftTypeHandlerTestSuite) TestUpdateShiftType_OtherUsersType() {
	alice := suite.createUserWithTemplate("alice")
	bob := suite.createUserWithTemplate("bob")

	_, err := suite.service.Create(alice.ID, services.CreateShiftTypeInput{Code: "DAY", Name: "Day"})
	suite.Require().NoError(err)

	body, _ := json.Marshal(map[string]interface{}{
		"name": "Hijacked",
	})
	c, w := suite.createAuthContext("PATCH", "/api/shift-types/1", body, bob.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateShiftType(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestUpdateShiftType_BadID tests the path parameter validation
func (suite *ShiftTypeHandlerTestSuite) TestUpdateShiftType_BadID() {
	user := suite.createUserWithTemplate("alice")

	body, _ := json.Marshal(map[string]interface{}{"name": "Day"})
	c, w := suite.createAuthContext("PATCH", "/api/shift-types/abc", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	suite.handler.UpdateShiftType(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestDeleteShiftType_Success tests deleting an unused shift type
func (suite *ShiftTypeHandlerTestSuite) TestDeleteShiftType_Success() {
	user := suite.createUserWithTemplate("alice")

	_, err := suite.service.Create(user.ID, services.CreateShiftTypeInput{Code: "DAY", Name: "Day"})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("DELETE", "/api/shift-types/1", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteShiftType(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.ShiftType{}).Count(&count)
	assert.EqualValues(suite.T(), 0, count)
}

// TestDeleteShiftType_InUse tests the referential guard response
func (suite *ShiftTypeHandlerTestSuite) TestDeleteShiftType_InUse() {
	user := suite.createUserWithTemplate("alice")

	_, err := suite.service.Create(user.ID, services.CreateShiftTypeInput{Code: "DAY", Name: "Day"})
	suite.Require().NoError(err)

	var schedule models.ShiftTypeSchedule
	suite.Require().NoError(suite.db.First(&schedule).Error)

	workDate, err := utils.ParseDate("2025-03-10")
	suite.Require().NoError(err)
	suite.db.Create(&models.WorkShift{
		UserID:              user.ID,
		WorkDate:            workDate,
		ShiftTypeScheduleID: schedule.ID,
		CreatedBy:           user.ID,
	})

	c, w := suite.createAuthContext("DELETE", "/api/shift-types/1", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteShiftType(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	apiErr := suite.decodeAPIError(w)
	assert.Equal(suite.T(), apierrors.ErrCodeInUse, apiErr.Code)
}

// TestShiftTypeHandlerTestSuite runs the test suite
func TestShiftTypeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ShiftTypeHandlerTestSuite))
}
