package catalog

// topRevenueProducts ranks products by gross revenue.
const topRevenueProducts = `
SELECT
    "Product Id",
    "Category",
    SUM("Quantity" * "List Price") AS total_revenue
FROM
    amazon_products
GROUP BY
    "Product Id", "Category"
ORDER BY
    total_revenue DESC
LIMIT 10;`

// topProfitMarginCities ranks cities by profit over revenue.
const topProfitMarginCities = `
SELECT
    "City",
    CASE
        WHEN SUM("List Price" * "Quantity") = 0 THEN 0
        ELSE SUM(("List Price" - "cost price") * "Quantity") / SUM("List Price" * "Quantity")
    END AS profit_margin
FROM
    amazon_products
WHERE
    "List Price" IS NOT NULL AND "cost price" IS NOT NULL AND "Quantity" > 0
GROUP BY
    "City"
ORDER BY
    profit_margin DESC
LIMIT 5;`

const totalDiscountByCategory = `
SELECT
    "Category",
    SUM("Quantity" * "List Price" * "Discount Percent" / 100) AS total_discount
FROM
    amazon_products
WHERE
    "Discount Percent" > 0 AND "Quantity" > 0
GROUP BY
    "Category";`

// averageSalePriceByCategory is the quantity-weighted list price.
const averageSalePriceByCategory = `
SELECT
    "Category",
    SUM("List Price" * "Quantity") / SUM("Quantity") AS average_sale_price
FROM
    amazon_products
WHERE
    "Quantity" > 0
GROUP BY
    "Category";`

const highestAverageSalePriceRegion = `
SELECT
    "Region",
    SUM("List Price" * "Quantity") / SUM("Quantity") AS average_sale_price
FROM
    amazon_products
WHERE
    "Quantity" > 0
GROUP BY
    "Region"
ORDER BY
    average_sale_price DESC
LIMIT 1;`

const totalProfitByCategory = `
SELECT
    "Category",
    SUM(("List Price" - "cost price") * "Quantity") AS total_profit
FROM
    amazon_products
WHERE
    "Quantity" > 0 AND "cost price" > 0
GROUP BY
    "Category";`

const topSegmentsByQuantity = `
SELECT
    "Segment",
    SUM("Quantity") AS total_quantity
FROM
    amazon_products
GROUP BY
    "Segment"
ORDER BY
    total_quantity DESC
LIMIT 3;`

// averageDiscountByRegion ignores undiscounted orders.
const averageDiscountByRegion = `
SELECT
    "Region",
    AVG("Discount Percent") AS average_discount_percent
FROM
    amazon_products
WHERE
    "Discount Percent" > 0
GROUP BY
    "Region";`

// mostProfitableCategories returns the top 3, not only the single best.
const mostProfitableCategories = `
SELECT
    "Category",
    SUM(("List Price" - "cost price") * "Quantity") AS total_profit
FROM
    amazon_products
WHERE
    "Quantity" > 0 AND "cost price" > 0
GROUP BY
    "Category"
ORDER BY
    total_profit DESC
LIMIT 3;`

const revenueByYear = `
SELECT
    EXTRACT(YEAR FROM CAST("Order Date" AS DATE)) AS year,
    SUM("List Price" * "Quantity") AS total_revenue
FROM
    amazon_products
WHERE
    "Quantity" > 0
GROUP BY
    year
ORDER BY
    year;`

var primary = []QueryDefinition{
	{Label: "1) Find top 10 highest revenue generating products", SQL: topRevenueProducts},
	{Label: "2) Find the top 5 cities with the highest profit margins", SQL: topProfitMarginCities},
	{Label: "3) Calculate the total discount given for each category", SQL: totalDiscountByCategory},
	{Label: "4) Find the average sale price per product category", SQL: averageSalePriceByCategory},
	{Label: "5) Find the region with the highest average sale price", SQL: highestAverageSalePriceRegion},
	{Label: "6) Find the total profit per category", SQL: totalProfitByCategory},
	{Label: "7) Identify the top 3 segments with the highest quantity of orders", SQL: topSegmentsByQuantity},
	{Label: "8) Determine the average discount percentage given per region", SQL: averageDiscountByRegion},
	{Label: "9) Find the product category with the highest total profit", SQL: mostProfitableCategories},
	{Label: "10) Calculate the total revenue generated per year", SQL: revenueByYear},
}
