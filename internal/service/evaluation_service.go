package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"github.com/shubhamjanki/collabhub-backend/internal/repository"
)

var ErrRubricMismatch = errors.New("rubric does not belong to the project's course")

type EvaluationService struct {
	evalRepo    repository.EvaluationRepositoryInterface
	rubricRepo  repository.RubricRepositoryInterface
	projectRepo repository.ProjectRepositoryInterface
	courseRepo  repository.CourseRepositoryInterface
}

func NewEvaluationService(
	evalRepo repository.EvaluationRepositoryInterface,
	rubricRepo repository.RubricRepositoryInterface,
	projectRepo repository.ProjectRepositoryInterface,
	courseRepo repository.CourseRepositoryInterface,
) *EvaluationService {
	return &EvaluationService{
		evalRepo:    evalRepo,
		rubricRepo:  rubricRepo,
		projectRepo: projectRepo,
		courseRepo:  courseRepo,
	}
}

type CriterionInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	MaxScore    int    `json:"max_score"`
}

type CreateRubricInput struct {
	Title    string           `json:"title"`
	Criteria []CriterionInput `json:"criteria"`
}

// CreateRubric lets course faculty define a grading rubric.
func (s *EvaluationService) CreateRubric(courseID, facultyID uint, input CreateRubricInput) (*models.Rubric, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course.FacultyID != facultyID {
		return nil, ErrNotCourseOwner
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.New("rubric title is required")
	}
	if len(input.Criteria) == 0 {
		return nil, errors.New("rubric needs at least one criterion")
	}

	rubric := &models.Rubric{
		CourseID:  courseID,
		Title:     strings.TrimSpace(input.Title),
		CreatedBy: facultyID,
	}
	for i, c := range input.Criteria {
		if strings.TrimSpace(c.Title) == "" {
			return nil, fmt.Errorf("criterion %d: title is required", i+1)
		}
		if c.MaxScore <= 0 {
			return nil, fmt.Errorf("criterion %d: max score must be positive", i+1)
		}
		rubric.Criteria = append(rubric.Criteria, models.RubricCriterion{
			Title:       strings.TrimSpace(c.Title),
			Description: c.Description,
			MaxScore:    c.MaxScore,
			Position:    i,
		})
	}

	if err := s.rubricRepo.Create(rubric); err != nil {
		return nil, err
	}
	return s.rubricRepo.FindByID(rubric.ID)
}

func (s *EvaluationService) GetRubric(id uint) (*models.Rubric, error) {
	return s.rubricRepo.FindByID(id)
}

func (s *EvaluationService) ListRubrics(courseID uint) ([]models.Rubric, error) {
	return s.rubricRepo.ListByCourse(courseID)
}

type ScoreInput struct {
	CriterionID uint `json:"criterion_id"`
	Score       int  `json:"score"`
}

type EvaluateInput struct {
	RubricID uint         `json:"rubric_id"`
	Comment  string       `json:"comment"`
	Scores   []ScoreInput `json:"scores"`
}

// Evaluate records the course faculty's scores for a project against one of
// the course's rubrics. Every criterion must be scored within [0, max];
// re-evaluating replaces the previous scores.
func (s *EvaluationService) Evaluate(projectID, evaluatorID uint, input EvaluateInput) (*models.Evaluation, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.FindByID(project.CourseID)
	if err != nil {
		return nil, err
	}
	if course.FacultyID != evaluatorID {
		return nil, ErrNotCourseOwner
	}

	rubric, err := s.rubricRepo.FindByID(input.RubricID)
	if err != nil {
		return nil, err
	}
	if rubric.CourseID != project.CourseID {
		return nil, ErrRubricMismatch
	}

	byID := make(map[uint]models.RubricCriterion, len(rubric.Criteria))
	for _, c := range rubric.Criteria {
		byID[c.ID] = c
	}

	scored := make(map[uint]bool, len(input.Scores))
	eval := &models.Evaluation{
		ProjectID:   projectID,
		RubricID:    rubric.ID,
		EvaluatorID: evaluatorID,
		Comment:     input.Comment,
	}
	for _, sc := range input.Scores {
		criterion, ok := byID[sc.CriterionID]
		if !ok {
			return nil, fmt.Errorf("unknown criterion %d", sc.CriterionID)
		}
		if scored[sc.CriterionID] {
			return nil, fmt.Errorf("criterion %d scored twice", sc.CriterionID)
		}
		if sc.Score < 0 || sc.Score > criterion.MaxScore {
			return nil, fmt.Errorf("score for %q must be between 0 and %d", criterion.Title, criterion.MaxScore)
		}
		scored[sc.CriterionID] = true
		eval.Scores = append(eval.Scores, models.EvaluationScore{
			CriterionID: sc.CriterionID,
			Score:       sc.Score,
		})
	}
	if len(scored) != len(rubric.Criteria) {
		return nil, errors.New("every criterion must be scored")
	}

	if err := s.evalRepo.Upsert(eval); err != nil {
		return nil, err
	}
	return s.evalRepo.FindByID(eval.ID)
}

func (s *EvaluationService) ListByProject(projectID uint) ([]models.Evaluation, error) {
	return s.evalRepo.ListByProject(projectID)
}
