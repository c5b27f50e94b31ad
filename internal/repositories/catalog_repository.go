package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	"github.com/aaravmahajanofficial/safari-storefront/internal/utils"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogRepository is the read-only view of the store's catalog tables.
type CatalogRepository interface {
	FetchProducts(ctx context.Context) ([]models.ProductRow, error)
	FetchProductImages(ctx context.Context) ([]models.ProductImageRow, error)
	FetchCategories(ctx context.Context) ([]models.CategoryRow, error)
	// FetchConfig returns nil when the store has no configuration row.
	FetchConfig(ctx context.Context) (*models.ConfigRow, error)
	FetchProductByID(ctx context.Context, id int64) (*models.ProductRow, error)
	FetchProductImagesByID(ctx context.Context, id int64) ([]models.ProductImageRow, error)
}

type catalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepo(db *sql.DB) CatalogRepository {
	return &catalogRepository{DB: db}
}

const productColumns = `
		SELECT p.id, p.nombre, p.descripcion, p.precio, p.stock, p.categoria_id, p.url_video, p.foto_url,
		       c.nombre AS categoria_nombre,
		       s.nombre AS subcategoria_nombre
		FROM productos p
		LEFT JOIN categorias c ON p.categoria_id = c.id
		LEFT JOIN subcategorias s ON p.subcategoria_id = s.id`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (models.ProductRow, error) {
	var row models.ProductRow

	err := s.Scan(&row.ID, &row.Name, &row.Description, &row.Price, &row.Stock, &row.CategoryID, &row.VideoURL, &row.PhotoURL, &row.CategoryName, &row.SubcategoryName)

	return row, err
}

func (r *catalogRepository) FetchProducts(ctx context.Context) ([]models.ProductRow, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := productColumns + `
		WHERE p.es_activo = TRUE
		ORDER BY p.id`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}

	defer rows.Close()

	var products []models.ProductRow

	for rows.Next() {
		row, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) FetchProductImages(ctx context.Context) ([]models.ProductImageRow, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id_producto, url_imagen FROM producto_imagenes ORDER BY orden`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying product images: %w", err)
	}

	defer rows.Close()

	var images []models.ProductImageRow

	for rows.Next() {
		var img models.ProductImageRow

		if err := rows.Scan(&img.ProductID, &img.URL); err != nil {
			return nil, fmt.Errorf("scanning product image: %w", err)
		}

		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product images: %w", err)
	}

	return images, nil
}

func (r *catalogRepository) FetchCategories(ctx context.Context) ([]models.CategoryRow, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT DISTINCT c.id, c.nombre
		FROM categorias c
		JOIN productos p ON p.categoria_id = c.id
		WHERE c.es_activo = TRUE AND p.es_activo = TRUE
		ORDER BY c.id`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}

	defer rows.Close()

	var categories []models.CategoryRow

	for rows.Next() {
		var c models.CategoryRow

		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

func (r *catalogRepository) FetchConfig(ctx context.Context) (*models.ConfigRow, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT nombre_comercial, telefono FROM configuracion_empresa LIMIT 1`

	row := &models.ConfigRow{}

	err := r.DB.QueryRowContext(dbCtx, query).Scan(&row.TradeName, &row.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying store configuration: %w", err)
	}

	return row, nil
}

func (r *catalogRepository) FetchProductByID(ctx context.Context, id int64) (*models.ProductRow, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := productColumns + `
		WHERE p.id = $1`

	row, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("querying product %d: %w", id, err)
	}

	return &row, nil
}

func (r *catalogRepository) FetchProductImagesByID(ctx context.Context, id int64) ([]models.ProductImageRow, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id_producto, url_imagen FROM producto_imagenes WHERE id_producto = $1 ORDER BY orden`

	rows, err := r.DB.QueryContext(dbCtx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying images of product %d: %w", id, err)
	}

	defer rows.Close()

	var images []models.ProductImageRow

	for rows.Next() {
		var img models.ProductImageRow

		if err := rows.Scan(&img.ProductID, &img.URL); err != nil {
			return nil, fmt.Errorf("scanning product image: %w", err)
		}

		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product images: %w", err)
	}

	return images, nil
}
