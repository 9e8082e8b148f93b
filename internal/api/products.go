package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListProducts returns the catalog
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var list productList
	if err := c.do(ctx, http.MethodGet, "/products", nil, &list); err != nil {
		return nil, err
	}
	return list.Products, nil
}

// AddProduct creates a product and returns the service's echo of it
func (c *Client) AddProduct(ctx context.Context, p Product) (Product, error) {
	p.ID = ""
	var created Product
	if err := c.do(ctx, http.MethodPost, c.config.ProductsAddPath, p, &created); err != nil {
		return Product{}, err
	}
	return created, nil
}

// UpdateProduct replaces the product with the given id
func (c *Client) UpdateProduct(ctx context.Context, id string, p Product) (Product, error) {
	p.ID = ""
	var updated Product
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), p, &updated); err != nil {
		return Product{}, err
	}
	return updated, nil
}

// DeleteProduct removes the product with the given id
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}
