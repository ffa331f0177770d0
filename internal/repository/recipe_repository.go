package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"recipe-be/internal/entities"
)

//go:generate mockgen -source=recipe_repository.go -destination=mocks/mock_recipe_repository.go -package=mocks

// RecipeFilter narrows a recipe listing. A recipe matches a non-empty ID list
// when it is associated with at least one of the IDs.
type RecipeFilter struct {
	TagIDs        []int64
	IngredientIDs []int64
}

// Associations describes the association sets a write replaces. When a
// Replace flag is false that set is left untouched; when it is true the set
// becomes exactly the given IDs (an empty list clears it).
type Associations struct {
	TagIDs             []int64
	IngredientIDs      []int64
	ReplaceTags        bool
	ReplaceIngredients bool
}

// RecipeRepository defines the interface for recipe database operations.
// Every method is scoped to the owning user.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entities.Recipe, assoc Associations) (*entities.Recipe, error)
	FindByID(ctx context.Context, userID, recipeID int64) (*entities.Recipe, error)
	List(ctx context.Context, userID int64, filter RecipeFilter) ([]*entities.Recipe, error)
	Update(ctx context.Context, recipe *entities.Recipe, assoc Associations) (*entities.Recipe, error)
	UpdateImage(ctx context.Context, userID, recipeID int64, image string) (previous *string, err error)
	Delete(ctx context.Context, userID, recipeID int64) error
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type recipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *sql.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

const recipeColumns = `id, user_id, title, time_minutes, price, link, image, created_at, updated_at`

func scanRecipe(row interface{ Scan(...any) error }) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := row.Scan(
		&recipe.ID,
		&recipe.UserID,
		&recipe.Title,
		&recipe.TimeMinutes,
		&recipe.Price,
		&recipe.Link,
		&recipe.Image,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	recipe.Tags = []entities.Attribute{}
	recipe.Ingredients = []entities.Attribute{}
	return &recipe, nil
}

func (r *recipeRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Create inserts a recipe and its associations in one transaction
func (r *recipeRepository) Create(ctx context.Context, recipe *entities.Recipe, assoc Associations) (*entities.Recipe, error) {
	var created *entities.Recipe
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO recipes (user_id, title, time_minutes, price, link)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		var id int64
		err := tx.QueryRowContext(ctx, query,
			recipe.UserID,
			recipe.Title,
			recipe.TimeMinutes,
			recipe.Price,
			recipe.Link,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		if err := writeAssociations(ctx, tx, recipe.UserID, id, assoc); err != nil {
			return err
		}

		created, err = findRecipe(ctx, tx, recipe.UserID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// FindByID returns the recipe with its tags and ingredients, only if userID owns it
func (r *recipeRepository) FindByID(ctx context.Context, userID, recipeID int64) (*entities.Recipe, error) {
	return findRecipe(ctx, r.db, userID, recipeID)
}

// List returns the user's recipes, newest first, with association IDs and names loaded
func (r *recipeRepository) List(ctx context.Context, userID int64, filter RecipeFilter) ([]*entities.Recipe, error) {
	var tagIDs, ingredientIDs any
	if len(filter.TagIDs) > 0 {
		tagIDs = pq.Array(filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		ingredientIDs = pq.Array(filter.IngredientIDs)
	}

	query := `
		SELECT ` + recipeColumns + `
		FROM recipes r
		WHERE r.user_id = $1
		AND ($2::bigint[] IS NULL OR EXISTS (
			SELECT 1 FROM recipe_tags rt WHERE rt.recipe_id = r.id AND rt.tag_id = ANY($2::bigint[])
		))
		AND ($3::bigint[] IS NULL OR EXISTS (
			SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = r.id AND ri.ingredient_id = ANY($3::bigint[])
		))
		ORDER BY r.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, tagIDs, ingredientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]*entities.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	if err := loadAssociations(ctx, r.db, recipes); err != nil {
		return nil, err
	}

	return recipes, nil
}

// Update writes the scalar fields of recipe and the association sets selected by assoc
func (r *recipeRepository) Update(ctx context.Context, recipe *entities.Recipe, assoc Associations) (*entities.Recipe, error) {
	var updated *entities.Recipe
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE recipes
			SET title = $1, time_minutes = $2, price = $3, link = $4, updated_at = NOW()
			WHERE id = $5 AND user_id = $6
		`

		result, err := tx.ExecContext(ctx, query,
			recipe.Title,
			recipe.TimeMinutes,
			recipe.Price,
			recipe.Link,
			recipe.ID,
			recipe.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrNotFound
		}

		if err := writeAssociations(ctx, tx, recipe.UserID, recipe.ID, assoc); err != nil {
			return err
		}

		updated, err = findRecipe(ctx, tx, recipe.UserID, recipe.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateImage points the recipe at a new image path and returns the path it replaced
func (r *recipeRepository) UpdateImage(ctx context.Context, userID, recipeID int64, image string) (*string, error) {
	var previous *string
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT image FROM recipes WHERE id = $1 AND user_id = $2 FOR UPDATE`,
			recipeID, userID,
		).Scan(&previous)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock recipe: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE recipes SET image = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
			image, recipeID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to update recipe image: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return previous, nil
}

// Delete removes a recipe (only if user owns it); join rows cascade
func (r *recipeRepository) Delete(ctx context.Context, userID, recipeID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1 AND user_id = $2`, recipeID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func findRecipe(ctx context.Context, q querier, userID, recipeID int64) (*entities.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1 AND user_id = $2`

	recipe, err := scanRecipe(q.QueryRowContext(ctx, query, recipeID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}

	if err := loadAssociations(ctx, q, []*entities.Recipe{recipe}); err != nil {
		return nil, err
	}

	return recipe, nil
}

func writeAssociations(ctx context.Context, tx *sql.Tx, userID, recipeID int64, assoc Associations) error {
	if assoc.ReplaceTags {
		if err := replaceAssociation(ctx, tx, entities.KindTag, userID, recipeID, assoc.TagIDs); err != nil {
			return err
		}
	}
	if assoc.ReplaceIngredients {
		if err := replaceAssociation(ctx, tx, entities.KindIngredient, userID, recipeID, assoc.IngredientIDs); err != nil {
			return err
		}
	}
	return nil
}

// replaceAssociation makes ids the full association set of kind for the recipe.
// Every id must name an attribute owned by userID.
func replaceAssociation(ctx context.Context, tx *sql.Tx, kind entities.AttributeKind, userID, recipeID int64, ids []int64) error {
	ids = uniqueIDs(ids)

	if len(ids) > 0 {
		var owned int
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1 AND id = ANY($2)`, kind.Table())
		if err := tx.QueryRowContext(ctx, query, userID, pq.Array(ids)).Scan(&owned); err != nil {
			return fmt.Errorf("failed to check %s ownership: %w", kind, err)
		}
		if owned != len(ids) {
			return &UnknownAttributeError{Kind: kind, IDs: ids}
		}
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE recipe_id = $1`, kind.JoinTable())
	if _, err := tx.ExecContext(ctx, query, recipeID); err != nil {
		return fmt.Errorf("failed to clear recipe %ss: %w", kind, err)
	}

	if len(ids) == 0 {
		return nil
	}

	query = fmt.Sprintf(`
		INSERT INTO %s (recipe_id, %s)
		SELECT $1, UNNEST($2::bigint[])
	`, kind.JoinTable(), kind.JoinColumn())
	if _, err := tx.ExecContext(ctx, query, recipeID, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to add recipe %ss: %w", kind, err)
	}

	return nil
}

// loadAssociations fills Tags and Ingredients of every recipe, each ordered by id
func loadAssociations(ctx context.Context, q querier, recipes []*entities.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[int64]*entities.Recipe, len(recipes))
	ids := make([]int64, len(recipes))
	for i, recipe := range recipes {
		byID[recipe.ID] = recipe
		ids[i] = recipe.ID
	}

	for _, kind := range []entities.AttributeKind{entities.KindTag, entities.KindIngredient} {
		query := fmt.Sprintf(`
			SELECT j.recipe_id, a.id, a.user_id, a.name
			FROM %s j
			JOIN %s a ON a.id = j.%s
			WHERE j.recipe_id = ANY($1)
			ORDER BY a.id
		`, kind.JoinTable(), kind.Table(), kind.JoinColumn())

		if err := scanAssociations(ctx, q, query, ids, kind, byID); err != nil {
			return err
		}
	}

	return nil
}

func scanAssociations(ctx context.Context, q querier, query string, ids []int64, kind entities.AttributeKind, byID map[int64]*entities.Recipe) error {
	rows, err := q.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load recipe %ss: %w", kind, err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID int64
		var attr entities.Attribute
		if err := rows.Scan(&recipeID, &attr.ID, &attr.UserID, &attr.Name); err != nil {
			return fmt.Errorf("failed to scan recipe %s: %w", kind, err)
		}
		recipe := byID[recipeID]
		if kind == entities.KindTag {
			recipe.Tags = append(recipe.Tags, attr)
		} else {
			recipe.Ingredients = append(recipe.Ingredients, attr)
		}
	}

	return rows.Err()
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
