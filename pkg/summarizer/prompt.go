package summarizer

// systemPrompt sets the assistant behavior for every summarization call
const systemPrompt = "You are a helpful assistant that creates clear, concise summaries."

// summarizationPrompt is the fixed instructional template. The transcript is
// appended via fmt.Sprintf. The four section headers here are the canonical
// ones enforced by NormalizeSections.
const summarizationPrompt = `Analyze the following transcript and generate a well-written, narrative-style summary that captures the essence of the conversation. Structure the output into clearly labeled sections to make it easy to digest and reflect on. Specifically, include the following:

🧠 Key Points
Provide a narrative overview of the main topics and themes discussed. Focus on the core ideas, significant insights, and recurring concepts that shaped the conversation. Present this in a flowing, readable paragraph or bulleted narrative form.

💡 Key Learnings
Summarize the most important takeaways and lessons from the conversation. Highlight meaningful realizations, strategies, or principles that emerged. This section should feel like the distilled wisdom someone would walk away with after reading the transcript.

🤔 Reflection Questions
Offer a set of thoughtful, reflective questions that encourage deeper thinking about the themes discussed. These questions should help the reader consider how the insights might apply to their own life, work, or mindset.

✅ Action Items
List any specific actions, next steps, or commitments mentioned in the transcript. These should be clear, actionable tasks—whether explicitly stated or reasonably implied—that a person could implement based on the conversation.

Transcript:
%s`

// consolidationPrompt combines per-chunk summaries of a long transcript into
// a single summary with the same four sections
const consolidationPrompt = `Combine and consolidate the following section summaries into a single comprehensive summary with the sections:

🧠 Key Points
💡 Key Learnings
🤔 Reflection Questions
✅ Action Items

Section Summaries to Combine:
%s`
