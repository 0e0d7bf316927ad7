package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"
	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Resident errors
var (
	ErrResidentNotFound        = errors.New("resident not found")
	ErrDuplicateResidentID     = errors.New("resident id already exists")
	ErrInvalidDateOfBirth      = errors.New("date_of_birth must be a valid YYYY-MM-DD date")
	ErrSearchCriteriaRequired  = errors.New("search query or at least one filter is required")
	ErrAttainmentOtherRequired = errors.New("educational_attainment_other is required when educational_attainment is 'Others please specify'")
)

// ResidentService handles resident registry business logic
type ResidentService struct {
	residentRepo repositories.ResidentRepository
}

// NewResidentService creates a new resident service
func NewResidentService(residentRepo repositories.ResidentRepository) *ResidentService {
	return &ResidentService{residentRepo: residentRepo}
}

// CreateResidentInput represents create resident input
type CreateResidentInput struct {
	HouseholdNumber            string `json:"household_number"`
	PhilsysNumber              string `json:"philsys_number"`
	FirstName                  string `json:"first_name"`
	LastName                   string `json:"last_name"`
	MiddleName                 string `json:"middle_name"`
	Gender                     string `json:"gender"`
	DateOfBirth                string `json:"date_of_birth"`
	BirthPlace                 string `json:"birth_place"`
	Address                    string `json:"address"`
	ContactNumber              string `json:"contact_number"`
	CivilStatus                string `json:"civil_status"`
	Religion                   string `json:"religion"`
	EducationalAttainment      string `json:"educational_attainment"`
	EducationalAttainmentOther string `json:"educational_attainment_other"`
}

// UpdateResidentInput represents partial update input. Nil fields leave
// the stored value unchanged.
type UpdateResidentInput struct {
	HouseholdNumber            *string `json:"household_number"`
	ResidentID                 *string `json:"resident_id"`
	PhilsysNumber              *string `json:"philsys_number"`
	FirstName                  *string `json:"first_name"`
	LastName                   *string `json:"last_name"`
	MiddleName                 *string `json:"middle_name"`
	Gender                     *string `json:"gender"`
	DateOfBirth                *string `json:"date_of_birth"`
	BirthPlace                 *string `json:"birth_place"`
	Address                    *string `json:"address"`
	ContactNumber              *string `json:"contact_number"`
	CivilStatus                *string `json:"civil_status"`
	Religion                   *string `json:"religion"`
	EducationalAttainment      *string `json:"educational_attainment"`
	EducationalAttainmentOther *string `json:"educational_attainment_other"`
}

// GenderCount is one row of the gender aggregate
type GenderCount struct {
	Gender string `json:"gender"`
	Count  int64  `json:"count"`
}

// StreetCount is one row of the street aggregate
type StreetCount struct {
	Street string `json:"street"`
	Count  int64  `json:"count"`
}

// EducationCount is one row of the educational attainment aggregate
type EducationCount struct {
	EducationalAttainment string `json:"educational_attainment"`
	Count                 int64  `json:"count"`
}

// AgeGroupCount is one bucket of the age histogram
type AgeGroupCount struct {
	AgeGroup string `json:"ageGroup"`
	Count    int64  `json:"count"`
}

// ResidentStats represents the demographic aggregates
type ResidentStats struct {
	Total                   int64            `json:"total"`
	ByGender                []GenderCount    `json:"byGender"`
	ByAge                   []AgeGroupCount  `json:"byAge"`
	ByStreet                []StreetCount    `json:"byStreet"`
	ByEducationalAttainment []EducationCount `json:"byEducationalAttainment"`
}

// List returns a page of active residents matching the filter, ordered
// by last name ascending
func (s *ResidentService) List(ctx context.Context, filter *repositories.ResidentFilter, offset, limit int) ([]*models.Resident, int64, error) {
	return s.residentRepo.List(ctx, filter, offset, limit)
}

// Search is list with the added requirement that at least one of
// query/filters is set
func (s *ResidentService) Search(ctx context.Context, filter *repositories.ResidentFilter, offset, limit int) ([]*models.Resident, int64, error) {
	if filter.IsZero() {
		return nil, 0, ErrSearchCriteriaRequired
	}
	return s.residentRepo.List(ctx, filter, offset, limit)
}

// GetByID returns an active resident. Soft-deleted residents 404.
func (s *ResidentService) GetByID(ctx context.Context, id uint) (*models.Resident, error) {
	resident, err := s.residentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}
	return resident, nil
}

// Create validates input, derives age, assigns the next resident id and
// persists the row. Household numbers are deliberately not checked for
// uniqueness: several residents may share one household.
func (s *ResidentService) Create(ctx context.Context, input *CreateResidentInput) (*models.ResidentSummary, error) {
	var missing []string
	if input.HouseholdNumber == "" {
		missing = append(missing, "household_number")
	}
	if input.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if input.LastName == "" {
		missing = append(missing, "last_name")
	}
	if input.Gender == "" {
		missing = append(missing, "gender")
	}
	if input.DateOfBirth == "" {
		missing = append(missing, "date_of_birth")
	}
	if input.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	birth, err := models.ParseDate(input.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateOfBirth
	}

	if input.EducationalAttainment == models.EducationalAttainmentOthers && input.EducationalAttainmentOther == "" {
		return nil, ErrAttainmentOtherRequired
	}

	resident := &models.Resident{
		HouseholdNumber:            input.HouseholdNumber,
		PhilsysNumber:              input.PhilsysNumber,
		FirstName:                  input.FirstName,
		LastName:                   input.LastName,
		MiddleName:                 input.MiddleName,
		Gender:                     input.Gender,
		DateOfBirth:                input.DateOfBirth,
		BirthPlace:                 input.BirthPlace,
		Age:                        models.AgeAt(birth, time.Now()),
		Address:                    input.Address,
		ContactNumber:              input.ContactNumber,
		CivilStatus:                input.CivilStatus,
		Religion:                   input.Religion,
		EducationalAttainment:      input.EducationalAttainment,
		EducationalAttainmentOther: input.EducationalAttainmentOther,
		IsActive:                   true,
	}

	if err := s.residentRepo.Create(ctx, resident); err != nil {
		return nil, err
	}

	log.Printf("✅ Resident created: %s (%s %s)", resident.ResidentID, resident.FirstName, resident.LastName)

	return resident.ToSummary(), nil
}

// Update applies a partial update. Age is recomputed only when
// date_of_birth is supplied.
func (s *ResidentService) Update(ctx context.Context, id uint, input *UpdateResidentInput) (*models.Resident, error) {
	resident, err := s.residentRepo.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}

	if input.ResidentID != nil && *input.ResidentID != resident.ResidentID {
		existing, err := s.residentRepo.FindByResidentID(ctx, *input.ResidentID)
		if err == nil && existing.ID != resident.ID {
			return nil, ErrDuplicateResidentID
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		resident.ResidentID = *input.ResidentID
	}

	if input.HouseholdNumber != nil {
		resident.HouseholdNumber = *input.HouseholdNumber
	}
	if input.PhilsysNumber != nil {
		resident.PhilsysNumber = *input.PhilsysNumber
	}
	if input.FirstName != nil {
		resident.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		resident.LastName = *input.LastName
	}
	if input.MiddleName != nil {
		resident.MiddleName = *input.MiddleName
	}
	if input.Gender != nil {
		resident.Gender = *input.Gender
	}
	if input.DateOfBirth != nil {
		birth, err := models.ParseDate(*input.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateOfBirth
		}
		resident.DateOfBirth = *input.DateOfBirth
		resident.Age = models.AgeAt(birth, time.Now())
	}
	if input.BirthPlace != nil {
		resident.BirthPlace = *input.BirthPlace
	}
	if input.Address != nil {
		resident.Address = *input.Address
	}
	if input.ContactNumber != nil {
		resident.ContactNumber = *input.ContactNumber
	}
	if input.CivilStatus != nil {
		resident.CivilStatus = *input.CivilStatus
	}
	if input.Religion != nil {
		resident.Religion = *input.Religion
	}
	if input.EducationalAttainment != nil {
		resident.EducationalAttainment = *input.EducationalAttainment
	}
	if input.EducationalAttainmentOther != nil {
		resident.EducationalAttainmentOther = *input.EducationalAttainmentOther
	}

	if resident.EducationalAttainment == models.EducationalAttainmentOthers && resident.EducationalAttainmentOther == "" {
		return nil, ErrAttainmentOtherRequired
	}

	if err := s.residentRepo.Update(ctx, resident); err != nil {
		return nil, err
	}

	return resident, nil
}

// SoftDelete marks a resident inactive; the row is retained
func (s *ResidentService) SoftDelete(ctx context.Context, id uint) error {
	exists, err := s.residentRepo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrResidentNotFound
	}

	return s.residentRepo.SoftDelete(ctx, id)
}

// Stats computes demographic aggregates over active residents. The age
// histogram derives from date_of_birth at call time, not from the stored
// age column, so a birthday passing since the last write still lands the
// resident in the right bucket.
func (s *ResidentService) Stats(ctx context.Context) (*ResidentStats, error) {
	total, err := s.residentRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	genderRows, err := s.residentRepo.CountByGender(ctx)
	if err != nil {
		return nil, err
	}
	byGender := make([]GenderCount, len(genderRows))
	for i, row := range genderRows {
		byGender[i] = GenderCount{Gender: row.Label, Count: row.Count}
	}

	streetRows, err := s.residentRepo.CountByStreet(ctx)
	if err != nil {
		return nil, err
	}
	byStreet := make([]StreetCount, len(streetRows))
	for i, row := range streetRows {
		byStreet[i] = StreetCount{Street: row.Label, Count: row.Count}
	}

	educationRows, err := s.residentRepo.CountByEducationalAttainment(ctx)
	if err != nil {
		return nil, err
	}
	byEducation := make([]EducationCount, len(educationRows))
	for i, row := range educationRows {
		byEducation[i] = EducationCount{EducationalAttainment: row.Label, Count: row.Count}
	}

	dates, err := s.residentRepo.ActiveDatesOfBirth(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	buckets := make(map[string]int64, len(models.AgeGroups))
	for _, dob := range dates {
		age := models.CalculateAge(dob, now)
		if age < 0 {
			continue
		}
		buckets[models.AgeGroupFor(age)]++
	}
	byAge := make([]AgeGroupCount, len(models.AgeGroups))
	for i, group := range models.AgeGroups {
		byAge[i] = AgeGroupCount{AgeGroup: group, Count: buckets[group]}
	}

	return &ResidentStats{
		Total:                   total,
		ByGender:                byGender,
		ByAge:                   byAge,
		ByStreet:                byStreet,
		ByEducationalAttainment: byEducation,
	}, nil
}
