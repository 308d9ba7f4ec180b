// Package catalog holds the predefined analytical queries run by salesdash.
//
// Queries are grouped into two catalogs selected by a Mode. Every query is a
// literal read-only SELECT against the amazon_products table; nothing is
// ever formatted into the SQL text. Any future query that accepts user input
// must pass it as a bind parameter.
package catalog
