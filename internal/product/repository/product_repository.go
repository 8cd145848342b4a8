package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cosmassist/platform/internal/product"
	sharedredis "github.com/cosmassist/platform/internal/redis"
	goredis "github.com/redis/go-redis/v9"
)

const productViewKeyPrefix = "product:view:"

// Columns the listing may sort by. Anything else falls back to created_at.
var sortableColumns = map[string]bool{
	"id":         true,
	"name":       true,
	"price":      true,
	"stock":      true,
	"rank":       true,
	"category":   true,
	"created_at": true,
	"updated_at": true,
}

const productColumns = `id, name, brand, description, price, stock, category, rank,
	ingredients, combination, dry, normal, oily, sensitive, main_image_url,
	created_at, updated_at`

// ProductRepository stores catalog entries in PostgreSQL and keeps per-id
// views in a Redis cache.
type ProductRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[product.Product]
}

func NewProductRepository(db *sql.DB, redisClient *goredis.Client) *ProductRepository {
	return &ProductRepository{
		db:    db,
		cache: sharedredis.NewViewCache[product.Product](redisClient, 0),
	}
}

func (r *ProductRepository) List(ctx context.Context, params product.ListParams) ([]product.Product, error) {
	var (
		conditions []string
		args       []any
	)
	if params.Query != "" {
		args = append(args, "%"+params.Query+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if params.Category != "" {
		args = append(args, params.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	sortBy := params.SortBy
	if !sortableColumns[sortBy] {
		sortBy = "created_at"
	}
	direction := "ASC"
	if params.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	args = append(args, params.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, params.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

// GetByID returns a product by attempting Redis first, then PostgreSQL.
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*product.Product, error) {
	cacheKey := fmt.Sprintf("%s%d", productViewKeyPrefix, id)
	if p, ok := r.cache.Get(ctx, cacheKey); ok {
		return p, nil
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, product.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// Warm the cache
	r.cache.Set(ctx, cacheKey, p)
	return p, nil
}

func (r *ProductRepository) GetByName(ctx context.Context, name string) (*product.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE name = $1`, name)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, product.ErrNotFound
	}
	return p, err
}

func (r *ProductRepository) Create(ctx context.Context, req product.CreateProductRequest) (*product.Product, error) {
	const query = `
		INSERT INTO products (name, brand, description, price, stock, category, rank,
			ingredients, combination, dry, normal, oily, sensitive, main_image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + productColumns

	row := r.db.QueryRowContext(ctx, query,
		req.Name, nullString(req.Brand), nullString(req.Description),
		req.Price, req.Stock, nullString(req.Category), req.Rank,
		nullString(req.Ingredients), req.Combination, req.Dry, req.Normal,
		req.Oily, req.Sensitive, nullString(req.MainImageURL),
	)
	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	r.cache.Set(ctx, fmt.Sprintf("%s%d", productViewKeyPrefix, p.ID), p)
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int, req product.UpdateProductRequest) (*product.Product, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.Brand != nil {
		set("brand", nullString(*req.Brand))
	}
	if req.Description != nil {
		set("description", nullString(*req.Description))
	}
	if req.Price != nil {
		set("price", *req.Price)
	}
	if req.Stock != nil {
		set("stock", *req.Stock)
	}
	if req.Category != nil {
		set("category", nullString(*req.Category))
	}
	if req.Rank != nil {
		set("rank", *req.Rank)
	}
	if req.Ingredients != nil {
		set("ingredients", nullString(*req.Ingredients))
	}
	if req.Combination != nil {
		set("combination", *req.Combination)
	}
	if req.Dry != nil {
		set("dry", *req.Dry)
	}
	if req.Normal != nil {
		set("normal", *req.Normal)
	}
	if req.Oily != nil {
		set("oily", *req.Oily)
	}
	if req.Sensitive != nil {
		set("sensitive", *req.Sensitive)
	}
	if req.MainImageURL != nil {
		set("main_image_url", nullString(*req.MainImageURL))
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), productColumns)

	row := r.db.QueryRowContext(ctx, query, args...)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, product.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	r.cache.Set(ctx, fmt.Sprintf("%s%d", productViewKeyPrefix, p.ID), p)
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return product.ErrNotFound
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", productViewKeyPrefix, id))
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*product.Product, error) {
	var (
		p            product.Product
		brand        sql.NullString
		description  sql.NullString
		category     sql.NullString
		ingredients  sql.NullString
		mainImageURL sql.NullString
		rank         sql.NullFloat64
		combination  sql.NullBool
		dry          sql.NullBool
		normal       sql.NullBool
		oily         sql.NullBool
		sensitive    sql.NullBool
	)
	err := row.Scan(
		&p.ID, &p.Name, &brand, &description, &p.Price, &p.Stock, &category,
		&rank, &ingredients, &combination, &dry, &normal, &oily, &sensitive,
		&mainImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Brand = brand.String
	p.Description = description.String
	p.Category = category.String
	p.Ingredients = ingredients.String
	p.MainImageURL = mainImageURL.String
	if rank.Valid {
		p.Rank = &rank.Float64
	}
	p.Combination = nullBoolPtr(combination)
	p.Dry = nullBoolPtr(dry)
	p.Normal = nullBoolPtr(normal)
	p.Oily = nullBoolPtr(oily)
	p.Sensitive = nullBoolPtr(sensitive)
	return &p, nil
}

func nullBoolPtr(b sql.NullBool) *bool {
	if !b.Valid {
		return nil
	}
	return &b.Bool
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
