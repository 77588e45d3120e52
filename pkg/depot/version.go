package depot

const Version = "0.3.0"
