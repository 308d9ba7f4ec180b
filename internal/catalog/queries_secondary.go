package catalog

// Revenue in this catalog is net of discount:
// "List Price" * "Quantity" * (1 - "Discount Percent" / 100).

const citiesByOrderCount = `
SELECT
    "City",
    COUNT(*) AS Total_Orders
FROM
    amazon_products
GROUP BY
    "City"
ORDER BY
    Total_Orders DESC
LIMIT 5;`

const averageOrderValueBySegment = `
SELECT
    "Segment",
    SUM(("List Price" * "Quantity") * (1 - "Discount Percent" / 100)) / COUNT(*) AS Average_Order_Value
FROM
    amazon_products
GROUP BY
    "Segment"
ORDER BY
    Average_Order_Value DESC;`

const topRevenueMonths = `
SELECT
    EXTRACT(MONTH FROM CAST("Order Date" AS DATE)) AS Month,
    SUM(("List Price" * "Quantity") * (1 - "Discount Percent" / 100)) AS Total_Revenue
FROM
    amazon_products
GROUP BY
    Month
ORDER BY
    Total_Revenue DESC
LIMIT 5;`

const lowestQuantityProducts = `
SELECT
    "Product Id",
    SUM("Quantity") AS Total_Quantity_Sold
FROM
    amazon_products
GROUP BY
    "Product Id"
ORDER BY
    Total_Quantity_Sold ASC
LIMIT 3;`

const revenueByCity = `
SELECT
    "City",
    SUM(("List Price" * "Quantity") * (1 - "Discount Percent" / 100)) AS Total_Revenue
FROM
    amazon_products
GROUP BY
    "City"
ORDER BY
    Total_Revenue DESC
LIMIT 4;`

// categoriesByOrders counts units, not order lines.
const categoriesByOrders = `
SELECT
    "Category",
    SUM("Quantity") AS Total_Orders
FROM
    amazon_products
GROUP BY
    "Category"
ORDER BY
    Total_Orders DESC
LIMIT 3;`

const averageDiscountBySegment = `
SELECT
    "Segment",
    AVG("Discount Percent") AS Average_Discount_Percent
FROM
    amazon_products
GROUP BY
    "Segment"
ORDER BY
    Average_Discount_Percent DESC;`

const quantityByShipMode = `
SELECT
    "Ship Mode",
    SUM("Quantity") AS Total_Quantity_Sold
FROM
    amazon_products
GROUP BY
    "Ship Mode"
ORDER BY
    Total_Quantity_Sold DESC;`

const revenueByYearRanked = `
SELECT
    EXTRACT(YEAR FROM CAST("Order Date" AS DATE)) AS Year,
    SUM(("List Price" * "Quantity") * (1 - "Discount Percent" / 100)) AS Total_Revenue
FROM
    amazon_products
GROUP BY
    Year
ORDER BY
    Total_Revenue DESC;`

const topProfitProducts = `
SELECT
    "Product Id",
    SUM(("List Price" * "Quantity") * (1 - "Discount Percent" / 100) - ("cost price" * "Quantity")) AS Total_Profit
FROM
    amazon_products
GROUP BY
    "Product Id"
ORDER BY
    Total_Profit DESC
LIMIT 3;`

var secondary = []QueryDefinition{
	{Label: "11) Find the City with the Maximum Number of Orders", SQL: citiesByOrderCount},
	{Label: "12) Calculate the Average Order Value (AOV) Per Segment", SQL: averageOrderValueBySegment},
	{Label: "13) Identify the Month with the Highest Total Revenue", SQL: topRevenueMonths},
	{Label: "14) Find the Product with the Lowest Total Quantity Sold", SQL: lowestQuantityProducts},
	{Label: "15) Find the Total Revenue for Each City", SQL: revenueByCity},
	{Label: "16) Identify the Product Category with the Most Orders", SQL: categoriesByOrders},
	{Label: "17) Find the Average Discount Percentage Given per Segment", SQL: averageDiscountBySegment},
	{Label: "18) Calculate the Total Quantity Sold Per Ship Mode", SQL: quantityByShipMode},
	{Label: "19) Find the Year with the Highest Total Revenue", SQL: revenueByYearRanked},
	{Label: "20) Identify the Top 3 Products with the Highest Profit", SQL: topProfitProducts},
}
